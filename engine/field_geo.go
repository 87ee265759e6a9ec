package engine

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// GeoPointField is a [longitude, latitude] pair (spec.md §4.4 "GeoPoint"), encoded
// as a GeoJSON Point on MongoDB and as a "POINT(lon lat)" literal on SQL dialects.
type GeoPointField struct {
	BaseField
}

func NewGeoPointField(name string, required bool) *GeoPointField {
	return &GeoPointField{BaseField{name: name, queryPath: name, kind: KindGeoPoint, creator: CreatorUser, required: required}}
}

func (f *GeoPointField) ReturnType() ReturnType { return ReturnGeoPoint }

func (f *GeoPointField) coerce(v interface{}) (interface{}, *ClientError) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) != 2 {
		return nil, newError(CodeInvalidValue, "invalid_geopoint_value")
	}
	lon, lonOK := toFloat(arr[0])
	lat, latOK := toFloat(arr[1])
	if !lonOK || !latOK || lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return nil, newError(CodeInvalidValue, "geopoint_out_of_range")
	}
	return [2]float64{lon, lat}, nil
}

func (f *GeoPointField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *GeoPointField) Encode(dialect Dialect, value interface{}) (interface{}, error) {
	point, ok := value.([2]float64)
	if !ok {
		return nil, errInvalidField("field %q holds an invalid geopoint value", f.name)
	}
	if dialect == DialectMongoDB {
		return bson.M{"type": "Point", "coordinates": []float64{point[0], point[1]}}, nil
	}
	return fmt.Sprintf("POINT(%g %g)", point[0], point[1]), nil
}
