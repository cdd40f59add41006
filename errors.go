/*
 * errors.go, part of gopdft.
 *
 * Copyright 2026 Raul Mera A. (raulpuntomeraatusachpuntocl)
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
 */

package pdft

// Error is the interface all errors in goPDFT implement. The Decorate
// method allows to add and retrieve info from the error without
// changing its type or wrapping it around something else. The
// decoration slice should contain the functions in the calling stack,
// plus, for each function, any relevant information, or nothing.
// Passing an empty string just returns the current decoration.
type Error interface {
	Error() string
	Decorate(string) []string
}

// errBase carries the message and decoration slice common to every
// concrete error type in the package.
type errBase struct {
	message string
	deco    []string
}

func (err *errBase) Error() string { return err.message }

// Decorate adds dec to the decoration slice of the error and returns
// the resulting slice.
func (err *errBase) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func berr(message string, caller string) errBase {
	return errBase{message: message, deco: []string{caller}}
}

// ConfigurationError signals an inversion set up from entities that
// lack a required ingredient, typically grid-resolved densities that
// were not collected during the previous SCF solve.
type ConfigurationError struct {
	errBase
}

// GridMismatchError signals that the quadrature grid of a fragment is
// not compatible with the grid of the reference.
type GridMismatchError struct {
	errBase
}

// UnimplementedError signals a request for a variant of a scheme that
// is not implemented, such as Zhang-Carter with unequal alpha and beta
// occupations.
type UnimplementedError struct {
	errBase
}

// MaxIterationsError is returned by Inverter.Run when the configured
// iteration bound is reached. The loop has no successful exit: this
// error always ends the run, no matter how small the residual got, so
// callers should inspect the histories rather than the error alone.
type MaxIterationsError struct {
	errBase
	//Number of cycles that were run, bound+1.
	Cycles int
}

// NumericalError signals a floating-point degeneracy the update schemes
// refuse to push through silently: a vanishing orbital-energy gap, a
// response operator whose factorization failed, or a non-finite
// increment.
type NumericalError struct {
	errBase
}

// errDecorate asserts that err implements pdft.Error and decorates it
// with the caller's name before returning it. Calling it on any other
// error will panic, so it is only used on errors this package built
// itself.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

// errDecorateForeign decorates err like errDecorate when it implements
// pdft.Error, and otherwise folds its message into a fresh package
// error. Used on errors coming back from external collaborators, whose
// contract only promises a plain error.
func errDecorateForeign(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	e := berr(err.Error(), caller)
	return &e
}

// PanicMsg is a message used for panics. It does satisfy the error
// interface, but for recoverable conditions use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrShape      = PanicMsg("goPDFT: dimension mismatch")
	ErrNilMatrix  = PanicMsg("goPDFT: nil matrix")
	ErrBlockCount = PanicMsg("goPDFT: grid block count mismatch")
	ErrSpin       = PanicMsg("goPDFT: invalid spin channel")
)
