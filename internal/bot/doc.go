// Package bot — “склейка” вокруг hd2api, poller, war, feed и httpapi,
// реализующая живой кэш Helldivers 2. Бот:
//   - берёт эксклюзивную блокировку каталога json_dir (один процесс на дампы);
//   - запускает четыре цикла опроса (10s/60s/300s/900s) с восстановлением
//     по next_iter.json и дампам hd2_dumps/;
//   - поднимает HTTP (readiness, планеты, секторы, приказы, /ws);
//   - шлёт события оператору через feed.Hub.
//
// Жизненный цикл:
//   - Создать бота через New().
//   - (Опционально) UseConfig("conf/hd2config.json") — файл создаётся с
//     дефолтами, если его нет.
//   - Запустить Start() и остановить Stop().
//
// Пример:
//
//	b := bot.New()
//	_ = b.UseConfig("conf/hd2config.json")
//
//	if err := b.Start(); err != nil { log.Fatal(err) }
//	defer b.Stop()
//
// Конфигурация:
//   - JSON (см. BotConfig); api_base перекрывается переменной HELLDIVERS_API.
package bot
