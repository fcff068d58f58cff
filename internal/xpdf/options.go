package xpdf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Page returns a page bound for use in an options struct.
func Page(n int) *int {
	return &n
}

// NativeOption is a command line flag passed through to the executable
// uninterpreted. A blank Value emits the flag alone.
type NativeOption struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// NativeOptions keeps the caller's order.
type NativeOptions []NativeOption

// Flag is a NativeOption without a value, e.g. Flag("-q").
func Flag(name string) NativeOption {
	return NativeOption{Name: name}
}

// Option is a NativeOption with a value, e.g. Option("-cfg", "xpdfrc").
func Option(name, value string) NativeOption {
	return NativeOption{Name: name, Value: value}
}

// Args flattens the options in order.
func (n NativeOptions) Args() []string {
	args := make([]string, 0, len(n)*2)
	for _, opt := range n {
		args = append(args, opt.Name)
		if strings.TrimSpace(opt.Value) != "" {
			args = append(args, opt.Value)
		}
	}
	return args
}

// PageArgs encodes the optional first and last page.
func PageArgs(start, stop *int) []string {
	var args []string
	if start != nil {
		args = append(args, "-f", strconv.Itoa(*start))
	}
	if stop != nil {
		args = append(args, "-l", strconv.Itoa(*stop))
	}
	return args
}

// PasswordArgs encodes the owner password, then the user password.
func PasswordArgs(owner, user string) []string {
	var args []string
	if owner != "" {
		args = append(args, "-opw", owner)
	}
	if user != "" {
		args = append(args, "-upw", user)
	}
	return args
}

// LookupArgs returns the tokens mapped to an enum value. The zero value
// means unset and encodes to nothing.
func LookupArgs[T ~string](kind string, v T, table map[T][]string) ([]string, error) {
	if v == "" {
		return nil, nil
	}
	args, ok := table[v]
	if !ok {
		return nil, NewRuntimeError(fmt.Sprintf("%s case %s is missing from command options", kind, v), nil)
	}
	return args, nil
}

// Variants lists the keys of an enum table in sorted order.
func Variants[T ~string](table map[T][]string) []string {
	names := make([]string, 0, len(table))
	for k := range table {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}
