// Package store — то, что переживает рестарт: таймеры следующего запуска
// циклов опроса (next_iter.json) и последние payload-ы по схемам
// (hd2_dumps/{Schema}.json). Все записи атомарные (temp + fsync + rename).
package store
