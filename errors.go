/*
 * errors.go, part of cebeconf.
 *
 *
 * Copyright 2026 The cebeconf authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package cebe

import (
	"fmt"
	"strings"
)

//Kind classifies the errors of the library. Kinds are comparable, so
//errors.Is(err, cebe.ErrFormat) works with any *Error of that kind.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	ErrFormat             = Kind("ill-formatted input")
	ErrResourceNotFound   = Kind("model resource not found")
	ErrShapeMismatch      = Kind("shape mismatch")
	ErrUnsupportedElement = Kind("unsupported element")
	ErrDescriptorSize     = Kind("descriptor size too small")
)

//Error is the general error type of cebeconf. All errors are critical:
//nothing is predicted after one of them.
type Error struct {
	kind     Kind
	message  string
	deco     []string
	critical bool
}

//NewError returns a critical error of the given kind with a formatted message.
func NewError(kind Kind, format string, a ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, a...), critical: true}
}

func (err *Error) Error() string {
	return fmt.Sprintf("cebeconf: %s: %s", err.kind, err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Decorated is Decorate that returns the error, for one-line returns.
func (err *Error) Decorated(dec string) *Error {
	err.Decorate(dec)
	return err
}

//Critical returns whether the error is critical or it can be ignored
func (err *Error) Critical() bool { return err.critical }

//Kind returns the kind of the error
func (err *Error) Kind() Kind { return err.kind }

//Unwrap returns the kind, so errors.Is can match it.
func (err *Error) Unwrap() error { return err.kind }

//Trace returns the functions the error went through, innermost first.
func (err *Error) Trace() string { return strings.Join(err.deco, " <- ") }

//ErrDecorate decorates err with the caller's name if err is a Decorator,
//and returns it unchanged otherwise.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if d, ok := err.(Decorator); ok {
		d.Decorate(caller)
	}
	return err
}
