// Package poller — четыре цикла опроса API Helldivers 2 (10s / 60s / 300s /
// 900s) поверх war.Cache.
//
//	900s  GameClientConfiguration
//	300s  MajorOrders, WarTime (+TimeSinceStart), Leaderboard
//	 60s  NewsFeed, затем проверка смены сезона
//	 10s  WarStats, WarStatus, затем remap, если остальные тиры готовы
//
// Каждый цикл: ждёт готовность хоста и сезона; если в next_iter.json его
// следующий запуск ещё впереди — поднимает дампы в кеш и досыпает; дальше по
// кругу: скачать всё -> проверить форму -> Commit -> дампы + таймер.
// Ошибки цикла уходят в лог и Notify, цикл продолжает работать.
//
// Пример:
//
//	s, err := poller.New(poller.Config{
//	    Cache: cache, API: client, Endpoints: endpoints,
//	    Timers: timers, Dumps: dumps, Notify: feed.Notify,
//	})
//	if err != nil { log.Fatal(err) }
//	go s.Run(ctx)
package poller
