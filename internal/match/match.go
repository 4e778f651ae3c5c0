package match

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Threshold — минимальная похожесть (0..100), чтобы считать совпадением.
const Threshold = 75

type Result struct {
	Match       string // найденное имя (если OK)
	OK          bool
	Suggestions []string // до 3 вариантов, если не нашлось
	Message     string   // текст для пользователя, если не нашлось
}

type scored struct {
	name  string
	score float64
	order int
}

// Complete ищет имя среди candidates: точное совпадение -> лучшая из
// подстрок (порог не нужен, вхождение и есть совпадение) -> лучший по всему
// списку >= Threshold. Иначе — до трёх подсказок.
func Complete(query string, candidates []string) Result {
	title := cases.Title(language.English).String(strings.TrimSpace(query))

	for _, c := range candidates {
		if c == title {
			return Result{Match: c, OK: true}
		}
	}
	for _, c := range candidates {
		if strings.EqualFold(c, title) {
			return Result{Match: c, OK: true}
		}
	}

	var substrings []string
	if lower := strings.ToLower(title); lower != "" {
		for _, c := range candidates {
			if strings.Contains(strings.ToLower(c), lower) {
				substrings = append(substrings, c)
			}
		}
	}
	// среди нескольких вхождений побеждает самое похожее, при равенстве — первое
	if bySub := rank(title, substrings); len(bySub) > 0 {
		return Result{Match: bySub[0].name, OK: true}
	}

	byAll := rank(title, candidates)
	if len(byAll) > 0 && byAll[0].score >= Threshold {
		return Result{Match: byAll[0].name, OK: true}
	}

	var top []string
	seen := map[string]bool{}
	for _, s := range byAll {
		if len(top) == 3 {
			break
		}
		if !seen[s.name] {
			seen[s.name] = true
			top = append(top, s.name)
		}
	}
	return Result{Suggestions: top, Message: notFound(title, top)}
}

func notFound(title string, top []string) string {
	var help string
	switch len(top) {
	case 0:
		help = "Check your spelling!"
	case 1:
		help = fmt.Sprintf("Did you mean: %s?", top[0])
	case 2:
		help = fmt.Sprintf("Did you mean: %s or %s?", top[0], top[1])
	default:
		help = fmt.Sprintf("Did you mean: %s, or %s?", strings.Join(top[:len(top)-1], ", "), top[len(top)-1])
	}
	return fmt.Sprintf("Your entry %s did not match with anything. %s", title, help)
}

func rank(query string, names []string) []scored {
	out := make([]scored, 0, len(names))
	for i, n := range names {
		out = append(out, scored{name: n, score: Score(query, n), order: i})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	return out
}

// Score — похожесть 0..100 без учёта регистра. Для строк сильно разной длины
// берётся лучшее окно длинной строки (с весом 0.9).
func Score(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == "" || b == "" {
		return 0
	}
	best := ratio(a, b)

	short, long := a, b
	if utf8.RuneCountInString(short) > utf8.RuneCountInString(long) {
		short, long = long, short
	}
	ls, ll := utf8.RuneCountInString(short), utf8.RuneCountInString(long)
	if float64(ll)/float64(ls) >= 1.5 {
		lr := []rune(long)
		for i := 0; i+ls <= len(lr); i++ {
			if p := ratio(short, string(lr[i:i+ls])) * 0.9; p > best {
				best = p
			}
		}
	}
	return best
}

func ratio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la+lb == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(d)/float64(max(la, lb)))
}
