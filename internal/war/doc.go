// Package war — живой кеш состояния Галактической войны Helldivers 2.
//
// Состав:
//   - справочники (Tables): имена планет, состав секторов, фракции;
//   - декодеры (Decoder): по одному на схему API — WarStatus, WarInfo,
//     NewsFeed, MajorOrders, WarTime, WarStats, Leaderboard,
//     GameClientConfiguration. Вход — сырой JSON в виде structpb.Value,
//     каждое поле читается с дефолтом;
//   - резолвер (Resolve): за один проход связывает снимки в Graph —
//     планета ↔ сектор ↔ фракция ↔ статус, события, кампании, приказы;
//   - оценка скорости освобождения (Estimator) по двум замерам здоровья;
//   - Cache: последние снимки + опубликованный граф + флаг готовности.
//
// Пример:
//
//	c := war.NewCache(war.NewDecoder(nil), 5*time.Minute)
//	_ = c.Commit(map[war.Schema]*structpb.Value{war.SchemaWarInfo: info})
//	_ = c.Commit(map[war.Schema]*structpb.Value{war.SchemaWarStatus: status})
//	if err := c.Remap(); err != nil { log.Println(err) }
//
//	g, err := c.Require() // war.ErrNotReady, пока не было успешного прохода
package war
