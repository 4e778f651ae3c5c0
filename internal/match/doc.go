// Package match — автодополнение имён (планеты, секторы) для команд:
// точное совпадение, затем подстрока, затем нечёткое сравнение (Levenshtein),
// и "Did you mean" с тремя вариантами, если ничего не подошло.
package match
