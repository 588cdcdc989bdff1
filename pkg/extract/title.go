package extract

// titleIndex derives the year-stripped title index from a completed
// phrase index. A key qualifies when it is longer than four characters,
// ends in four ASCII digits, and every one of its translations ends in
// those same four digits; the title entry is the key and each translation
// with that year suffix removed. Keys whose translations disagree on the
// suffix are left untouched.
func titleIndex(index Index) Index {
	titles := make(Index)

	for key, entry := range index {
		if len(key) <= 4 || !allDigits(key[len(key)-4:]) {
			continue
		}
		year := key[len(key)-4:]

		uniform := true
		for _, value := range entry {
			if len(value) < 4 || value[len(value)-4:] != year {
				uniform = false
				break
			}
		}
		if !uniform {
			continue
		}

		stripped := make(Entry, len(entry))
		for lang, value := range entry {
			stripped[lang] = value[:len(value)-4]
		}
		titles[key[:len(key)-4]] = stripped
	}

	return titles
}

// allDigits reports whether s consists entirely of ASCII digits.
func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
