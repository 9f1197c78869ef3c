package surrogate

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// FrequencyUncertainty is the per-frequency uncertainty of a
// frequency-domain waveform, split into the real and imaginary parts of
// the transformed covariance diagonal.
type FrequencyUncertainty struct {
	Real float64
	Imag float64
}

// FrequencyDomainWaveform returns the Fourier transform of the mean
// strain over the given times, along with the per-frequency uncertainty
// taken from the diagonal of the two-dimensional transform of the
// predictive covariance.
func (m *Model) FrequencyDomainWaveform(p Params, times []float64) ([]complex128, []FrequencyUncertainty, error) {
	mean, _, cov, err := m.MeanCov(times, p)
	if err != nil {
		return nil, nil, err
	}

	n := len(mean)
	rfft := fourier.NewFFT(n)
	strain := rfft.Coefficients(nil, mean)
	nf := len(strain) // n/2 + 1

	// Real transform along each covariance row, then a full complex
	// transform down each resulting column.
	rows := make([][]complex128, n)
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			row[j] = cov.At(i, j)
		}
		rows[i] = rfft.Coefficients(nil, row)
	}
	cfft := fourier.NewCmplxFFT(n)
	column := make([]complex128, n)
	uncert := make([]FrequencyUncertainty, nf)
	for j := 0; j < nf; j++ {
		for i := 0; i < n; i++ {
			column[i] = rows[i][j]
		}
		transformed := cfft.Coefficients(nil, column)
		uncert[j] = FrequencyUncertainty{
			Real: real(transformed[j]),
			Imag: imag(transformed[j]),
		}
	}
	return strain, uncert, nil
}
