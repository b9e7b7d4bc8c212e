package keypad

import "strings"

// Keys lists the key names accepted by Press.
var Keys = []string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".",
	"+", "-", "*", "/", "^", "(", ")",
	"neg", "sqrt", "del", "ce", "ac", "=",
}

// Press applies a key by name. Names are the digits, ".", the operators and
// parentheses, "neg", "sqrt", "del" (delete a character), "ce" (clear entry),
// "ac" (clear all), and "=". Case is ignored.
func (k *Keypad) Press(key string) error {
	switch key := strings.ToLower(key); key {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return k.Digit(rune(key[0]))
	case ".":
		k.Decimal()
	case "+", "-", "*", "/", "^":
		return k.Operator(key)
	case "(":
		return k.OpenParen()
	case ")":
		return k.CloseParen()
	case "neg":
		return k.Negate()
	case "sqrt":
		return k.Sqrt()
	case "del":
		return k.Delete()
	case "ce":
		k.ClearEntry()
	case "ac":
		k.ClearAll()
	case "=":
		_, _, err := k.Equals()
		return err
	default:
		return &KeyError{Key: key, Err: ErrUnknownKey}
	}
	return nil
}

// Type presses each key in turn, stopping at the first error.
func (k *Keypad) Type(keys ...string) error {
	for _, key := range keys {
		if err := k.Press(key); err != nil {
			return err
		}
	}
	return nil
}
