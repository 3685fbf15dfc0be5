package domain

// Symbol is a single tape character.
type Symbol rune

// Blank is the reserved symbol occupying cells that were never written.
const Blank Symbol = ' '

// String renders the symbol, showing Blank as "␣" so traces stay readable.
func (s Symbol) String() string {
	if s == Blank {
		return "␣"
	}
	return string(rune(s))
}

// Direction is the head movement code of a rule.
// Only Left and Right are executable; any other code is kept verbatim by the
// lenient parser and halts the machine when the rule fires.
type Direction rune

const (
	Left  Direction = 'L'
	Right Direction = 'R'
)

// Valid reports whether the direction can be executed.
func (d Direction) Valid() bool {
	return d == Left || d == Right
}

func (d Direction) String() string {
	return string(rune(d))
}

// MarshalText encodes the symbol as its single character.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(string(rune(s))), nil
}

// UnmarshalText decodes the first character; empty text is Blank.
func (s *Symbol) UnmarshalText(text []byte) error {
	*s = FirstSymbol(string(text))
	return nil
}

// MarshalText encodes the direction as its code character.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(string(rune(d))), nil
}

// UnmarshalText decodes the first character of the code.
func (d *Direction) UnmarshalText(text []byte) error {
	for _, r := range string(text) {
		*d = Direction(r)
		return nil
	}
	*d = 0
	return nil
}

// FirstSymbol returns the first character of s, or Blank when s is empty.
func FirstSymbol(s string) Symbol {
	for _, r := range s {
		return Symbol(r)
	}
	return Blank
}

// SymbolsOf splits s into one symbol per character.
func SymbolsOf(s string) []Symbol {
	syms := make([]Symbol, 0, len(s))
	for _, r := range s {
		syms = append(syms, Symbol(r))
	}
	return syms
}
