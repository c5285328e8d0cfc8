package engine

import "fmt"

var (
	ErrInvalidCommand = addPrefix("invalid command")
	ErrCorruptRecord  = addPrefix("record does not decode to an rfq")
	ErrUnknownCommand = addPrefix("unknown command type")
	ErrIDsExhausted   = addPrefix("no rfq id left to assign")
)

func addPrefix(errStr string) error {
	return fmt.Errorf("engine err: %s", errStr)
}
