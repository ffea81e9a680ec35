package curve

import (
	"errors"
	"math"
	"math/bits"

	"beziertui/internal/geom"
	"beziertui/internal/logging"
)

// DefaultBinomialLimit is the largest n for which binomial coefficients are
// computed from exact integer factorials.
const DefaultBinomialLimit = 12

// ErrBinomialOverflow is returned when an exact factorial product does not
// fit in 64 bits.
var ErrBinomialOverflow = errors.New("binomial coefficient overflows uint64")

// Tracer receives the construction geometry of a traced evaluation.
type Tracer interface {
	DrawPolyline(points []geom.Point)
	DrawSegment(a, b geom.Point)
}

// EvalDeCasteljau evaluates the Bezier curve with control points pts at t.
// With no points it returns (0, 0).
func EvalDeCasteljau(pts []geom.Point, t float64) geom.Point {
	return deCasteljau(pts, t, nil, nil)
}

// deCasteljau interpolates rounds n-1, n-2, ..., 1 in scratch, which is grown
// as needed. tr, if set, gets each intermediate round with two or more points.
func deCasteljau(pts []geom.Point, t float64, scratch []geom.Point, tr Tracer) geom.Point {
	if len(pts) == 0 {
		return geom.Point{}
	}
	if len(pts) == 1 {
		return pts[0]
	}
	if cap(scratch) < len(pts) {
		scratch = make([]geom.Point, len(pts))
	}
	buf := scratch[:len(pts)]
	copy(buf, pts)
	for n := len(buf) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			buf[i] = buf[i].Lerp(buf[i+1], t)
		}
		if tr != nil && n > 1 {
			tr.DrawPolyline(append([]geom.Point(nil), buf[:n]...))
		}
	}
	return buf[0]
}

// EvalBernstein evaluates the Bezier curve with control points pts at t as
// Σ C(n,i)·t^i·(1-t)^(n-i)·pts[i]. Up to n = limit the weights use Binomial;
// above it they are computed in log space so large n neither overflows nor
// underflows. With no points it returns (0, 0); with one it returns that point.
func EvalBernstein(pts []geom.Point, t float64, limit int) geom.Point {
	return bernstein(pts, t, limit, nil)
}

func bernstein(pts []geom.Point, t float64, limit int, tr Tracer) geom.Point {
	if len(pts) == 0 {
		return geom.Point{}
	}
	n := len(pts) - 1
	if n == 0 {
		return pts[0]
	}
	var sum geom.Point
	for i := 0; i <= n; i++ {
		w := bernsteinWeight(n, i, limit, t)
		v := pts[i].Scale(w)
		if tr != nil {
			tr.DrawSegment(sum, sum.Add(v))
		}
		sum = sum.Add(v)
	}
	return sum
}

func bernsteinWeight(n, i, limit int, t float64) float64 {
	if n <= limit {
		return Binomial(n, i, limit) * math.Pow(t, float64(i)) * math.Pow(1-t, float64(n-i))
	}
	lt, st := logPow(t, i)
	lu, su := logPow(1-t, n-i)
	return st * su * math.Exp(logBinomial(n, i)+lt+lu)
}

// logPow returns log|x^k| and the sign of x^k. x^0 is 1 even for x = 0.
func logPow(x float64, k int) (float64, float64) {
	if k == 0 {
		return 0, 1
	}
	sign := 1.0
	if x < 0 && k%2 == 1 {
		sign = -1
	}
	return float64(k) * math.Log(math.Abs(x)), sign
}

func logBinomial(n, k int) float64 {
	lg := func(x int) float64 {
		v, _ := math.Lgamma(float64(x))
		return v
	}
	return lg(n+1) - lg(k+1) - lg(n-k+1)
}

// Binomial returns C(n, k). For n <= limit it divides exact factorials; above
// the limit, or if the exact path would overflow, it uses a float64 product.
// A negative limit always selects the float path. Past n ≈ 1030 the central
// coefficients exceed float64 and come back as +Inf.
func Binomial(n, k, limit int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if n <= limit {
		c, err := BinomialExact(n, k)
		if err == nil {
			return float64(c)
		}
		logging.Logger().Debug("binomial exact path failed, using float", "n", n, "k", k, "err", err)
	}
	return binomialFloat(n, k)
}

// BinomialExact computes n! / (k!(n-k)!) with overflow-checked uint64
// factorials.
func BinomialExact(n, k int) (uint64, error) {
	if k < 0 || k > n {
		return 0, nil
	}
	nf, err := factorial(n)
	if err != nil {
		return 0, err
	}
	kf, err := factorial(k)
	if err != nil {
		return 0, err
	}
	rf, err := factorial(n - k)
	if err != nil {
		return 0, err
	}
	hi, den := bits.Mul64(kf, rf)
	if hi != 0 {
		return 0, ErrBinomialOverflow
	}
	return nf / den, nil
}

func factorial(n int) (uint64, error) {
	r := uint64(1)
	for i := 2; i <= n; i++ {
		hi, lo := bits.Mul64(r, uint64(i))
		if hi != 0 {
			return 0, ErrBinomialOverflow
		}
		r = lo
	}
	return r, nil
}

func binomialFloat(n, k int) float64 {
	if k > n-k {
		k = n - k
	}
	r := 1.0
	for j := 1; j <= k; j++ {
		r = r * float64(n-k+j) / float64(j)
	}
	return math.Round(r)
}
