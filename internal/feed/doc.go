// Package feed — канал оператора: ошибки циклов опроса, смена сезона,
// готовность данных. События пишутся в лог вызывающим и рассылаются
// websocket-клиентам (gorilla/websocket). Запись в сокет сериализована
// (мьютекс + write-deadline), клиентов держим ping/pong.
//
// Пример:
//
//	hub := feed.NewHub(50)
//	http.Handle("/ws", hub)
//	hub.Notify("[hd2] war season changed: 801 -> 802")
package feed
