package lexer

import "strconv"

// scanNumberOrDateOrDuration dispatches among the datetime, duration, and
// number token classes per the recognition priority in §4.1 (classes 4, 5,
// 6): a numeric lookahead first tries a date/time shape, then a shorthand
// duration suffix, before falling back to a plain number.
func (l *Lexer) scanNumberOrDateOrDuration(first rune) {
	if l.looksLikeDate() {
		l.scanDateTime()
		return
	}
	if l.looksLikeShorthandDuration() {
		l.scanShorthandDuration()
		return
	}
	// scanNumber expects the cursor on the first digit; step back over it.
	l.current--
	l.column--
	l.scanNumber(0)
}

// looksLikeDate reports whether the cursor (positioned just after the
// first digit) begins a `YYYY-MM-DD` or `HH:MM:SS` shape.
func (l *Lexer) looksLikeDate() bool {
	// We've already consumed one digit (at l.start). Need 3 more digits
	// then '-' for a date, or 1 more digit then ':' for a time.
	if isDigit(l.peekAt(0)) && isDigit(l.peekAt(1)) && isDigit(l.peekAt(2)) && l.peekAt(3) == '-' {
		return true
	}
	if isDigit(l.peekAt(0)) && l.peekAt(1) == ':' {
		return true
	}
	return false
}

func (l *Lexer) looksLikeShorthandDuration() bool {
	saveCurrent, saveColumn := l.current, l.column
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	matched := false
	for _, suf := range durationShorthandSuffixes {
		if l.matchesAt(suf) {
			after := l.current + len(suf)
			var trailing rune
			if after < len(l.source) {
				trailing = l.source[after]
			}
			if !isDigit(trailing) {
				matched = true
			}
			break
		}
	}
	l.current, l.column = saveCurrent, saveColumn
	return matched
}

func (l *Lexer) scanShorthandDuration() {
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	for _, suf := range durationShorthandSuffixes {
		if l.matchesAt(suf) {
			for range suf {
				l.advance()
			}
			break
		}
	}
	if isAlpha(l.peek()) {
		l.addError(CodeInvalidDuration, "duration has trailing characters after its unit suffix")
		for isAlpha(l.peek()) {
			l.advance()
		}
	}
	l.addToken(KindDuration, durationDescriptor())
}

// looksLikeISODuration reports whether the just-consumed `P` begins an
// ISO-8601 duration (`P[nY][nM][nW][nD][T...]`) rather than a bare
// identifier starting with `P`.
func (l *Lexer) looksLikeISODuration() bool {
	return isDigit(l.peek()) || l.peek() == 'T'
}

func (l *Lexer) scanISODuration() {
	sawComponent := false
	for isDigit(l.peek()) {
		for isDigit(l.peek()) {
			l.advance()
		}
		unit := l.peek()
		switch unit {
		case 'Y', 'M', 'W', 'D':
			l.advance()
			sawComponent = true
		default:
			l.addError(CodeInvalidDuration, "invalid ISO-8601 duration component")
			goto done
		}
	}
	if l.peek() == 'T' {
		l.advance()
		for isDigit(l.peek()) {
			for isDigit(l.peek()) {
				l.advance()
			}
			unit := l.peek()
			switch unit {
			case 'H', 'M', 'S':
				l.advance()
				sawComponent = true
			default:
				l.addError(CodeInvalidDuration, "invalid ISO-8601 duration component")
				goto done
			}
		}
	}
done:
	if !sawComponent {
		l.addError(CodeInvalidDuration, "empty ISO-8601 duration")
	}
	if isAlpha(l.peek()) {
		l.addError(CodeInvalidDuration, "duration has trailing characters after its unit suffix")
		for isAlpha(l.peek()) {
			l.advance()
		}
	}
	l.addToken(KindDuration, durationDescriptor())
}

func durationDescriptor() *TypeDescriptor {
	d := DescriptorDuration
	return &d
}

// scanDateTime scans an ISO-8601 date, time, or combined datetime literal
// starting from the already-consumed first digit.
func (l *Lexer) scanDateTime() {
	hasDate := false
	var year, month, day int

	if isDigit(l.peekAt(0)) && isDigit(l.peekAt(1)) && isDigit(l.peekAt(2)) && l.peekAt(3) == '-' {
		hasDate = true
		l.readDigits(3) // the first of the 4 year digits was already consumed by the caller
		year = atoiRunes(l.source[l.start:l.current])
		l.expectLiteral('-')
		month = l.readDigits(2)
		l.expectLiteral('-')
		day = l.readDigits(2)
		if month < 1 || month > 12 {
			l.addError(CodeInvalidCalendarDate, "invalid month in calendar date")
		} else if day < 1 || day > isDaysInMonth(year, month) {
			l.addError(CodeInvalidCalendarDate, "invalid day for calendar date")
		}
	}

	hasTime := false
	if hasDate {
		if l.peek() == 'T' || l.peek() == ' ' {
			sep := l.peek()
			// A bare space only introduces a time part when digits
			// plausibly follow in HH:MM:SS shape; otherwise it's just
			// whitespace after a LocalDate.
			if sep == 'T' || (isDigit(l.peekAt(1)) && l.peekAt(3) == ':') {
				l.advance()
				hasTime = true
				l.scanTimeOfDay(false)
			}
		}
	} else {
		hasTime = true
		l.scanTimeOfDay(true) // first HH digit already consumed by the caller
	}

	hasOffset := false
	if hasTime {
		if l.peek() == 'Z' {
			l.advance()
			hasOffset = true
		} else if l.peek() == '+' || (l.peek() == '-' && hasDate) {
			l.advance()
			l.readDigits(2)
			l.expectLiteral(':')
			l.readDigits(2)
			hasOffset = true
		}
	}

	var cls DateTimeClass
	switch {
	case hasDate && hasTime && hasOffset:
		cls = OffsetDateTime
	case hasDate && hasTime:
		cls = LocalDateTime
	case hasDate:
		cls = LocalDate
	default:
		cls = LocalTime
	}
	desc := DateTimeDescriptor(cls)
	l.emit(Token{
		Value: l.lexeme(),
		Kind:  KindDatetime,
		Prop:  &desc,
		Range: Region{Start: l.startPos, End: l.pos()},
	})
}

func (l *Lexer) scanTimeOfDay(firstHourDigitConsumed bool) {
	if firstHourDigitConsumed {
		l.readDigits(1)
	} else {
		l.readDigits(2)
	}
	l.expectLiteral(':')
	l.readDigits(2)
	l.expectLiteral(':')
	l.readDigits(2)
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
}

func (l *Lexer) readDigits(n int) int {
	start := l.current
	for i := 0; i < n && isDigit(l.peek()); i++ {
		l.advance()
	}
	return atoiRunes(l.source[start:l.current])
}

func atoiRunes(rs []rune) int {
	v, _ := strconv.Atoi(string(rs))
	return v
}

func (l *Lexer) expectLiteral(r rune) {
	if l.peek() != r {
		l.addError(CodeMalformedDatetime, "malformed datetime literal, expected %q", string(r))
		return
	}
	l.advance()
}

// scanNumber scans an integer or float literal. leadingSign is 0 unless a
// `+`/`-` was already consumed by the caller.
func (l *Lexer) scanNumber(leadingSign rune) {
	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'o' || l.peekAt(1) == 'b') {
		if leadingSign != 0 {
			l.addError(CodeInvalidNumberSign, "sign not allowed on hex/octal/binary number literal")
		}
		l.scanRadixNumber()
		return
	}

	groups := l.scanDigitGroups()
	isFloat := false

	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	} else if l.peek() == '.' {
		l.addError(CodeMalformedFloat, "malformed float literal: no digits after decimal point")
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if !isDigit(l.peek()) {
			l.addError(CodeMalformedFloat, "invalid scientific notation")
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	l.checkDigitGrouping(groups)

	lexeme := removeUnderscores(l.lexeme())
	if isFloat {
		if _, err := strconv.ParseFloat(lexeme, 64); err != nil {
			l.addError(CodeInvalidNumberLiteral, "invalid float literal: %s", err)
		}
		l.addToken(KindNumber, numberDesc(NumberFloat))
	} else {
		if _, err := strconv.ParseInt(lexeme, 10, 64); err != nil {
			l.addError(CodeInvalidNumberLiteral, "invalid integer literal: %s", err)
		}
		l.addToken(KindNumber, numberDesc(NumberInteger))
	}
}

func (l *Lexer) scanDigitGroups() []string {
	var groups []string
	var cur []rune
	for isDigit(l.peek()) || l.peek() == '_' {
		if l.peek() == '_' {
			groups = append(groups, string(cur))
			cur = nil
			l.advance()
			continue
		}
		cur = append(cur, l.advance())
	}
	groups = append(groups, string(cur))
	return groups
}

// checkDigitGrouping validates digit groups separated by `_`: a single
// group is always fine; otherwise groups must all be equal length >= 2,
// or all-but-last length 2 with a final group of length 3.
func (l *Lexer) checkDigitGrouping(groups []string) {
	if len(groups) <= 1 {
		return
	}
	equalLen := len(groups[0]) >= 2
	for _, g := range groups {
		if len(g) != len(groups[0]) {
			equalLen = false
			break
		}
	}
	thousandsStyle := true
	for i, g := range groups {
		if i == len(groups)-1 {
			if len(g) != 3 {
				thousandsStyle = false
			}
		} else if len(g) != 2 {
			thousandsStyle = false
		}
	}
	if !equalLen && !thousandsStyle {
		l.addWarning(CodeNumberGroupingWarning, "number grouping is not reasonable")
	}
}

func (l *Lexer) scanRadixNumber() {
	l.advance() // '0'
	radix := l.advance()
	var digitOK func(rune) bool
	switch radix {
	case 'x':
		digitOK = isHexDigit
	case 'o':
		digitOK = isOctalDigit
	case 'b':
		digitOK = isBinaryDigit
	}
	groups := []string{}
	var cur []rune
	for digitOK(l.peek()) || l.peek() == '_' {
		if l.peek() == '_' {
			groups = append(groups, string(cur))
			cur = nil
			l.advance()
			continue
		}
		cur = append(cur, l.advance())
	}
	groups = append(groups, string(cur))
	if len(cur) == 0 && len(groups) == 1 {
		l.addError(CodeInvalidNumberLiteral, "number literal has no digits")
	}
	l.checkDigitGrouping(groups)
	l.addToken(KindNumber, numberDesc(NumberInteger))
}

func numberDesc(c NumberClass) *TypeDescriptor {
	d := NumberDescriptor(c)
	return &d
}

func removeUnderscores(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r != '_' {
			out = append(out, r)
		}
	}
	return string(out)
}
