package req

import (
	"encoding/json"
	"errors"
	"io"
)

// Decode читает JSON-тело запроса в T. Пустое тело даёт нулевое значение T.
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		return payload, err
	}
	return payload, nil
}
