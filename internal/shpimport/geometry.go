package shpimport

import (
	"github.com/jonas-p/go-shp"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// toGeom converts a shapefile shape to a go-geom geometry. It returns nil for
// unsupported, empty or malformed shapes.
func toGeom(shape shp.Shape) geom.T {
	switch s := shape.(type) {
	case *shp.Point:
		return geom.NewPointFlat(geom.XY, []float64{s.X, s.Y})
	case *shp.MultiPoint:
		if len(s.Points) == 0 {
			return nil
		}
		return geom.NewMultiPointFlat(geom.XY, flatPoints(s.Points))
	case *shp.PolyLine:
		return polyLineToMultiLineString(s)
	case *shp.Polygon:
		return polygonToMultiPolygon(s)
	}
	return nil
}

// partRange returns the point index range of part i.
func partRange(parts []int32, numPoints, i int) (int, int) {
	start := int(parts[i])
	end := numPoints
	if i+1 < len(parts) {
		end = int(parts[i+1])
	}
	return start, end
}

func polyLineToMultiLineString(pl *shp.PolyLine) geom.T {
	if pl == nil || pl.NumParts == 0 || len(pl.Points) == 0 {
		return nil
	}

	mls := geom.NewMultiLineString(geom.XY)
	for i := range pl.Parts {
		start, end := partRange(pl.Parts, len(pl.Points), i)
		if start < 0 || end > len(pl.Points) || end-start < 2 {
			zap.L().Debug("shpimport: skipping malformed line part", zap.Int("part", i))
			continue
		}
		ls := geom.NewLineStringFlat(geom.XY, flatPoints(pl.Points[start:end]))
		if err := mls.Push(ls); err != nil {
			zap.L().Debug("shpimport: skipping line part", zap.Int("part", i), zap.Error(err))
		}
	}

	if mls.NumLineStrings() == 0 {
		return nil
	}
	return mls
}

// polygonToMultiPolygon maps every ring to its own polygon.
func polygonToMultiPolygon(p *shp.Polygon) geom.T {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY)
	for i := range p.Parts {
		start, end := partRange(p.Parts, len(p.Points), i)
		if start < 0 || end > len(p.Points) || end-start < 4 {
			zap.L().Debug("shpimport: skipping malformed ring", zap.Int("part", i))
			continue
		}
		ring := geom.NewLinearRingFlat(geom.XY, flatPoints(p.Points[start:end]))
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("shpimport: skipping ring", zap.Int("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("shpimport: skipping polygon part", zap.Int("part", i), zap.Error(err))
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

func flatPoints(points []shp.Point) []float64 {
	flat := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flat = append(flat, p.X, p.Y)
	}
	return flat
}
