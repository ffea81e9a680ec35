package geom

import (
	"errors"
	"strconv"
	"strings"
)

// ParseControlPoints parses pasted text into control points and their bbox.
// Supported: LINESTRING(x y, ...), MULTIPOINT(x y, ...), POINT(x y) and a bare
// "x y, x y, ..." list. Tuples that fail to parse are skipped.
func ParseControlPoints(text string) (points []Point, bbox BBox, err error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, BBox{}, errors.New("empty input")
	}
	up := strings.ToUpper(s)
	block := s
	tag := ""
	for _, t := range []string{"MULTIPOINT", "LINESTRING", "POINT"} {
		if strings.HasPrefix(up, t) {
			tag = t
			break
		}
	}
	switch {
	case tag != "":
		i := strings.Index(s, "(")
		j := strings.LastIndex(s, ")")
		if i < 0 || j <= i {
			return nil, BBox{}, errors.New("wkt " + strings.ToLower(tag) + ": invalid")
		}
		block = s[i+1 : j]
	case s[0] >= 'A' && s[0] <= 'Z', s[0] >= 'a' && s[0] <= 'z':
		return nil, BBox{}, errors.New("unsupported wkt type")
	case strings.ContainsAny(s, "()"):
		return nil, BBox{}, errors.New("unbalanced parentheses")
	}
	points = parseTuples(block)
	if len(points) == 0 {
		return nil, BBox{}, errors.New("wkt: no coordinates parsed")
	}
	bbox, _ = Bounds(points)
	return points, bbox, nil
}

// parseTuples splits "x y, x y" (MULTIPOINT also allows "(x y), (x y)").
func parseTuples(block string) []Point {
	var out []Point
	for _, tup := range strings.Split(block, ",") {
		tup = strings.Trim(strings.TrimSpace(tup), "()")
		parts := strings.Fields(tup)
		if len(parts) < 2 {
			continue
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			continue
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out
}
