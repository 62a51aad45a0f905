// Package ssfmerr defines the stable error kinds surfaced by the solver core.
package ssfmerr

import "errors"

// Sentinel error kinds. Wrap these with fmt.Errorf("%w: ...") to attach the
// segment index, step index, or offending quantity named in spec §7.
var (
	// ErrInvalidParameter covers N<2, dt<=0, L<=0, alpha_dB<0, pulse order<1,
	// a non-positive step safety factor, or an unknown pulse type/step mode.
	ErrInvalidParameter = errors.New("ssfm: invalid parameter")

	// ErrEnergyMismatch fires when a transform boundary's energy ratio
	// deviates from unity by more than the configured tolerance, or a
	// non-zero field produced a zero-energy transform.
	ErrEnergyMismatch = errors.New("ssfm: energy mismatch at transform boundary")

	// ErrNumericalInstability fires when a NaN or infinity appears in the
	// field or spectrum mid-run.
	ErrNumericalInstability = errors.New("ssfm: numerical instability")

	// ErrScheduleOverflow fires when the variable-step loop would exceed the
	// configured maximum step count.
	ErrScheduleOverflow = errors.New("ssfm: step schedule overflow")

	// ErrPersistence covers a loader finding missing or malformed columns.
	ErrPersistence = errors.New("ssfm: persistence error")
)
