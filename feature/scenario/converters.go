package scenario

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"nested-models/core/model"
	"nested-models/core/utils"
)

// converters are the custom relation converters a scenario may name.
var converters = map[string]model.Converter{
	"int":    toInt,
	"string": toString,
	"bool":   toBool,
	"time":   toTime,
}

// Converters returns the names of the available converters.
func Converters() []string {
	names := make([]string, 0, len(converters))
	for name := range converters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func toInt(raw any) (any, error) {
	if utils.IsNumber(raw) {
		return utils.ToInt(raw), nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("cannot convert %T to int", raw)
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return i, nil
}

func toString(raw any) (any, error) {
	return utils.ToString(raw), nil
}

func toBool(raw any) (any, error) {
	return utils.ToBool(raw), nil
}

func toTime(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		return time.Parse(time.RFC3339Nano, v)
	default:
		if f, ok := utils.ToFloat64(raw); ok {
			return time.UnixMilli(int64(f)).UTC(), nil
		}
		return nil, fmt.Errorf("cannot convert %T to time", raw)
	}
}
