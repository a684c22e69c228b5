package seqlog

import (
	"io"
	"log"
	"os"
	"reflect"
)

// GetPointer do the same thing like fmt.Sprintf("%p", &num) but fast
func GetPointer(value any) uint {
	ptr := reflect.ValueOf(value).Pointer()
	uintPtr := uintptr(ptr)
	return uint(uintPtr)
}

// newWriter opens filepath in append mode, or returns os.Stdout if filepath is empty.
func newWriter(filepath string) (*os.File, io.Writer) {
	if filepath == "" {
		return nil, os.Stdout
	}
	f, err := os.OpenFile(filepath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal(err)
	}
	return f, f
}
