package rule

import "strings"

// Parse parses a rule string.
//
// Supported notations, all case-insensitive:
//
//   - Life-like B/S: "B3/S23", with an optional V (von Neumann) or
//     H (hexagonal) suffix. The slash may be omitted (Catagolue style).
//   - Life-like S/B: "23/3", with the same suffixes.
//   - Generations: "B3/S23/2", "23/3/2" or "g2b3s23".
//   - Larger than Life: "R1,C0,M0,S2..3,B3..3,NM".
//   - Kellie Evans: "1,3,3,3,4".
//   - Higher-range outer-totalistic: "R3,C2,S2,B3,N+", where the S and B
//     lists take single counts and "lo-hi" ranges, and the trailing
//     neighborhood section may be omitted (Moore).
//
// The notations are tried in the order above; the first one that matches the
// whole string wins.
func Parse(s string) (Rule, error) {
	s = strings.TrimSpace(s)
	notations := []func(*parser) (Rule, bool, error){
		(*parser).lifeLikeBS,
		(*parser).lifeLikeSB,
		(*parser).generationsBSC,
		(*parser).generationsSBC,
		(*parser).generationsCatagolue,
		(*parser).hrotLtL,
		(*parser).hrotKE,
		(*parser).hrot,
	}
	for _, notation := range notations {
		p := &parser{input: s}
		rule, ok, err := notation(p)
		if !ok {
			continue
		}
		if err != nil {
			return Rule{}, err
		}
		return rule, nil
	}
	return Rule{}, &ParseError{
		Code:    ErrCodeInvalidSyntax,
		Rule:    s,
		Message: "unrecognized rule notation",
	}
}

// parser is a cursor over a rule string. Each notation method runs on a fresh
// parser and must consume the whole input to match.
type parser struct {
	input string
	pos   int
}

func (p *parser) done() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() (byte, bool) {
	if p.done() {
		return 0, false
	}
	return p.input[p.pos], true
}

// readMatch consumes the next character if it is one of set.
func (p *parser) readMatch(set string) (byte, bool) {
	c, ok := p.peek()
	if !ok || !strings.Contains(set, string(c)) {
		return 0, false
	}
	p.pos++
	return c, true
}

// readExact consumes s if the input continues with it.
func (p *parser) readExact(s string) bool {
	if strings.HasPrefix(p.input[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

// digit consumes a single decimal digit.
func (p *parser) digit() (int, bool) {
	c, ok := p.readMatch("0123456789")
	if !ok {
		return 0, false
	}
	return int(c - '0'), true
}

// digits consumes a run of decimal digits, one count per digit.
func (p *parser) digits() []int {
	var out []int
	for {
		d, ok := p.digit()
		if !ok {
			return out
		}
		out = append(out, d)
	}
}

// number consumes one or more decimal digits as a single value. overflow is
// true when the value is too large to matter; no valid rule needs more than
// six digits.
func (p *parser) number() (value int, ok, overflow bool) {
	start := p.pos
	for {
		if _, ok := p.readMatch("0123456789"); !ok {
			break
		}
	}
	digits := p.input[start:p.pos]
	if digits == "" {
		return 0, false, false
	}
	if len(digits) > 6 {
		return 0, true, true
	}
	for i := 0; i < len(digits); i++ {
		value = value*10 + int(digits[i]-'0')
	}
	return value, true, false
}

// countRange consumes a single count or a "lo-hi" range.
func (p *parser) countRange() (lo, hi int, ok, overflow bool) {
	lo, ok, overflow = p.number()
	if !ok || overflow {
		return 0, 0, ok, overflow
	}
	saved := p.pos
	if _, dash := p.readMatch("-"); dash {
		hi, ok, overflow = p.number()
		if ok && !overflow {
			return lo, hi, true, false
		}
		if overflow {
			return 0, 0, true, true
		}
		p.pos = saved
	}
	return lo, lo, true, false
}

// countList consumes comma-separated counts and ranges. A trailing comma that
// does not introduce another count is left unconsumed.
func (p *parser) countList() (counts []int, overflow bool) {
	lo, hi, ok, overflow := p.countRange()
	if overflow {
		return nil, true
	}
	if !ok {
		return nil, false
	}
	counts = appendRange(counts, lo, hi)
	for {
		saved := p.pos
		if _, comma := p.readMatch(","); !comma {
			return counts, false
		}
		lo, hi, ok, overflow := p.countRange()
		if overflow {
			return nil, true
		}
		if !ok {
			p.pos = saved
			return counts, false
		}
		counts = appendRange(counts, lo, hi)
	}
}

func appendRange(counts []int, lo, hi int) []int {
	for n := lo; n <= hi; n++ {
		counts = append(counts, n)
	}
	return counts
}

// lifeLikeSuffix consumes the optional neighborhood suffix of a Life-like
// rule string. It fails on any other trailing character.
func (p *parser) lifeLikeSuffix() (NeighborhoodType, bool) {
	c, ok := p.peek()
	if !ok {
		return Moore, true
	}
	p.pos++
	switch c {
	case 'V', 'v':
		return VonNeumann, true
	case 'H', 'h':
		return Hexagonal, true
	default:
		return 0, false
	}
}

// hrotNeighborhood consumes the neighborhood letter of a higher-range rule
// string.
func (p *parser) hrotNeighborhood() (NeighborhoodType, bool) {
	c, ok := p.peek()
	if !ok {
		return 0, false
	}
	p.pos++
	switch c {
	case 'M', 'm':
		return Moore, true
	case 'N', 'n':
		return VonNeumann, true
	case '+':
		return Cross, true
	case 'H', 'h':
		return Hexagonal, true
	default:
		return 0, false
	}
}

func (p *parser) finishLifeLike(birth, survival []int, states int) (Rule, bool, error) {
	neighborhood, ok := p.lifeLikeSuffix()
	if !ok || !p.done() {
		return Rule{}, false, nil
	}
	if states < 2 {
		return Rule{}, true, &ParseError{
			Code:    ErrCodeTooFewStates,
			Rule:    p.input,
			Message: "a rule needs at least two states",
		}
	}
	rule := Rule{
		States:       states,
		Neighborhood: neighborhood,
		Radius:       1,
		Birth:        birth,
		Survival:     survival,
	}
	if !rule.checkConditions() {
		return Rule{}, true, conditionError(p.input)
	}
	return rule, true, nil
}

func (p *parser) lifeLikeBS() (Rule, bool, error) {
	if _, ok := p.readMatch("Bb"); !ok {
		return Rule{}, false, nil
	}
	birth := p.digits()
	p.readMatch("/")
	if _, ok := p.readMatch("Ss"); !ok {
		return Rule{}, false, nil
	}
	survival := p.digits()
	return p.finishLifeLike(birth, survival, 2)
}

func (p *parser) lifeLikeSB() (Rule, bool, error) {
	survival := p.digits()
	if _, ok := p.readMatch("/"); !ok {
		return Rule{}, false, nil
	}
	birth := p.digits()
	return p.finishLifeLike(birth, survival, 2)
}

func (p *parser) generationsBSC() (Rule, bool, error) {
	if _, ok := p.readMatch("Bb"); !ok {
		return Rule{}, false, nil
	}
	birth := p.digits()
	if _, ok := p.readMatch("/"); !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch("Ss"); !ok {
		return Rule{}, false, nil
	}
	survival := p.digits()
	if _, ok := p.readMatch("/"); !ok {
		return Rule{}, false, nil
	}
	states, ok, overflow := p.number()
	if !ok {
		return Rule{}, false, nil
	}
	if overflow {
		return Rule{}, true, overflowError(p.input)
	}
	return p.finishLifeLike(birth, survival, states)
}

func (p *parser) generationsSBC() (Rule, bool, error) {
	survival := p.digits()
	if _, ok := p.readMatch("/"); !ok {
		return Rule{}, false, nil
	}
	birth := p.digits()
	if _, ok := p.readMatch("/"); !ok {
		return Rule{}, false, nil
	}
	states, ok, overflow := p.number()
	if !ok {
		return Rule{}, false, nil
	}
	if overflow {
		return Rule{}, true, overflowError(p.input)
	}
	return p.finishLifeLike(birth, survival, states)
}

func (p *parser) generationsCatagolue() (Rule, bool, error) {
	if _, ok := p.readMatch("Gg"); !ok {
		return Rule{}, false, nil
	}
	states, ok, overflow := p.number()
	if !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch("Bb"); !ok {
		return Rule{}, false, nil
	}
	birth := p.digits()
	if _, ok := p.readMatch("Ss"); !ok {
		return Rule{}, false, nil
	}
	survival := p.digits()
	if overflow {
		return Rule{}, true, overflowError(p.input)
	}
	return p.finishLifeLike(birth, survival, states)
}

func (p *parser) hrotLtL() (Rule, bool, error) {
	if _, ok := p.readMatch("Rr"); !ok {
		return Rule{}, false, nil
	}
	radius, ok, overflowR := p.number()
	if !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch(","); !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch("Cc"); !ok {
		return Rule{}, false, nil
	}
	states, ok, overflowC := p.number()
	if !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch(","); !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch("Mm"); !ok {
		return Rule{}, false, nil
	}
	center, ok := p.readMatch("01")
	if !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch(","); !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch("Ss"); !ok {
		return Rule{}, false, nil
	}
	smin, ok, overflowS1 := p.number()
	if !ok || !p.readExact("..") {
		return Rule{}, false, nil
	}
	smax, ok, overflowS2 := p.number()
	if !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch(","); !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch("Bb"); !ok {
		return Rule{}, false, nil
	}
	bmin, ok, overflowB1 := p.number()
	if !ok || !p.readExact("..") {
		return Rule{}, false, nil
	}
	bmax, ok, overflowB2 := p.number()
	if !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch(","); !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch("Nn"); !ok {
		return Rule{}, false, nil
	}
	neighborhood, ok := p.hrotNeighborhood()
	if !ok || !p.done() {
		return Rule{}, false, nil
	}

	if overflowR || overflowC || overflowS1 || overflowS2 || overflowB1 || overflowB2 {
		return Rule{}, true, overflowError(p.input)
	}
	if states < 2 {
		states = 2
	}
	// M1 counts the center cell itself, so a living cell contributes one to
	// its own survival count.
	if center == '1' {
		if smin == 0 || smax == 0 {
			return Rule{}, true, conditionError(p.input)
		}
		smin--
		smax--
	}
	rule := Rule{
		States:       states,
		Neighborhood: neighborhood,
		Radius:       radius,
		Birth:        appendRange(nil, bmin, bmax),
		Survival:     appendRange(nil, smin, smax),
	}
	if !rule.checkConditions() {
		return Rule{}, true, conditionError(p.input)
	}
	return rule, true, nil
}

func (p *parser) hrotKE() (Rule, bool, error) {
	radius, ok, overflowR := p.number()
	if !ok {
		return Rule{}, false, nil
	}
	var fields [4]int
	var overflow bool
	for i := range fields {
		if _, ok := p.readMatch(","); !ok {
			return Rule{}, false, nil
		}
		value, ok, fieldOverflow := p.number()
		if !ok {
			return Rule{}, false, nil
		}
		fields[i] = value
		overflow = overflow || fieldOverflow
	}
	if !p.done() {
		return Rule{}, false, nil
	}
	if overflowR || overflow {
		return Rule{}, true, overflowError(p.input)
	}
	bmin, bmax, smin, smax := fields[0], fields[1], fields[2], fields[3]
	// The center cell is always counted in this notation.
	if smin == 0 || smax == 0 {
		return Rule{}, true, conditionError(p.input)
	}
	smin--
	smax--
	rule := Rule{
		States:       2,
		Neighborhood: Moore,
		Radius:       radius,
		Birth:        appendRange(nil, bmin, bmax),
		Survival:     appendRange(nil, smin, smax),
	}
	if !rule.checkConditions() {
		return Rule{}, true, conditionError(p.input)
	}
	return rule, true, nil
}

func (p *parser) hrot() (Rule, bool, error) {
	if _, ok := p.readMatch("Rr"); !ok {
		return Rule{}, false, nil
	}
	radius, ok, overflowR := p.number()
	if !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch(","); !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch("Cc"); !ok {
		return Rule{}, false, nil
	}
	states, ok, overflowC := p.number()
	if !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch(","); !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch("Ss"); !ok {
		return Rule{}, false, nil
	}
	survival, overflowS := p.countList()
	if _, ok := p.readMatch(","); !ok {
		return Rule{}, false, nil
	}
	if _, ok := p.readMatch("Bb"); !ok {
		return Rule{}, false, nil
	}
	birth, overflowB := p.countList()

	neighborhood := Moore
	if _, comma := p.readMatch(","); comma {
		if _, ok := p.readMatch("Nn"); !ok {
			return Rule{}, false, nil
		}
		neighborhood, ok = p.hrotNeighborhood()
		if !ok {
			return Rule{}, false, nil
		}
	}
	if !p.done() {
		return Rule{}, false, nil
	}

	if overflowR || overflowC || overflowS || overflowB {
		return Rule{}, true, overflowError(p.input)
	}
	if states < 2 {
		states = 2
	}
	rule := Rule{
		States:       states,
		Neighborhood: neighborhood,
		Radius:       radius,
		Birth:        birth,
		Survival:     survival,
	}
	if !rule.checkConditions() {
		return Rule{}, true, conditionError(p.input)
	}
	return rule, true, nil
}

func conditionError(input string) *ParseError {
	return &ParseError{
		Code:    ErrCodeInvalidCondition,
		Rule:    input,
		Message: "birth or survival count exceeds the neighborhood size",
	}
}

func overflowError(input string) *ParseError {
	return &ParseError{
		Code:    ErrCodeIntegerOverflow,
		Rule:    input,
		Message: "numeric field too large",
	}
}
