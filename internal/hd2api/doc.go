// Package hd2api — HTTP-клиент официального API Helldivers 2 и набор его
// адресов.
//
//   - Client.Fetch: GET с лимитом запросов (x/time/rate), ETag/304 и разбором
//     тела в structpb.Value. Не-200 возвращается как *StatusError.
//   - Endpoints: базовые адреса + сезонные (WarSeason/{id}/...), которые
//     переключаются через SetSeason при смене сезона войны.
//
// Пример:
//
//	e := hd2api.NewEndpoints(os.Getenv("HELLDIVERS_API"), "")
//	c := hd2api.NewClient()
//	id, err := c.CurrentWarID(ctx, e)
//	if err != nil { id = hd2api.DefaultWarID }
//	e.SetSeason(id)
//
//	u, _ := e.WarStatus()
//	v, err := c.Fetch(ctx, u, nil)
package hd2api
