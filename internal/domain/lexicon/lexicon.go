// Package lexicon defines the fixed category keyword table used for interest
// inference. Both the profile builder and the candidate scorer consume this
// single definition; the table never changes at runtime.
//
// Keywords are lowercase stems in the content language. Matching is substring
// containment, not whole-word: "гір" matches "гірські" and "гірська".
package lexicon

import "strings"

// entry pairs a category name with its keyword stems. Declaration order is
// significant: it is the documented tie-break for equally scored categories.
type entry struct {
	name     string
	keywords []string
}

// table is the twelve topical buckets used for keyword-based interest
// inference. Stems mirror the seeded pin vocabulary.
var table = []entry{
	{"nature", []string{"пейзаж", "природа", "ліс", "гір", "морськ", "берег", "дерев", "озер", "річк"}},
	{"food", []string{"страва", "кулінар", "кухня", "їжа", "десерт", "смачн", "рецепт", "обід", "сніданок"}},
	{"travel", []string{"подорож", "горизонт", "екзотичн", "мандрівк", "відкритт", "пляж", "готель", "туризм"}},
	{"fashion", []string{"стильн", "модн", "тренд", "елегантн", "мода", "образ", "одяг", "аксесуар"}},
	{"art", []string{"творч", "мистец", "абстрактн", "колірн", "художн", "картина", "галерея", "малюнок"}},
	{"architecture", []string{"архітектур", "будівля", "дизайн", "пейзаж", "шедевр", "місто", "хмарочос", "мост"}},
	{"animals", []string{"улюбленець", "природа", "тварин", "домашн", "собака", "кіт", "птах", "лев"}},
	{"sport", []string{"активн", "спортивн", "фітнес", "досягненн", "життя", "біг", "тренування", "атлет"}},
	{"technology", []string{"технолог", "інновац", "цифров", "технічн", "сучасн", "комп'ютер", "смартфон", "гаджет"}},
	{"design", []string{"дизайн", "креативн", "мінімалізм", "інтер'єр", "графічн", "меблі", "декор", "стиль"}},
	{"beauty", []string{"краса", "косметик", "догляд", "елегантн", "природн", "макіяж", "парфум", "гламур"}},
	{"music", []string{"музичн", "концерт", "інструмент", "атмосфер", "ритм", "гітара", "піаніно", "мелодія"}},
}

// index maps category name to its declaration position.
var index = func() map[string]int {
	m := make(map[string]int, len(table))
	for i, e := range table {
		m[e.name] = i
	}
	return m
}()

// Categories returns all category names in declaration order.
func Categories() []string {
	names := make([]string, len(table))
	for i, e := range table {
		names[i] = e.name
	}
	return names
}

// Keywords returns a copy of the keyword stems for category, or nil when the
// category is unknown.
func Keywords(category string) []string {
	i, ok := index[category]
	if !ok {
		return nil
	}
	kws := make([]string, len(table[i].keywords))
	copy(kws, table[i].keywords)
	return kws
}

// Order returns the declaration position of category. Unknown categories sort
// after all known ones.
func Order(category string) int {
	if i, ok := index[category]; ok {
		return i
	}
	return len(table)
}

// Normalize folds free text to the lowercase form MatchCount expects.
func Normalize(text string) string {
	return strings.ToLower(text)
}

// MatchCount returns how many of category's keyword stems occur in text.
// Each stem counts at most once regardless of repetition. Text must already
// be normalized with Normalize.
func MatchCount(text, category string) int {
	i, ok := index[category]
	if !ok {
		return 0
	}
	n := 0
	for _, kw := range table[i].keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}
