package bot

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// ErrBadFormat marks user input that does not match the expected
// colon-delimited form.
var ErrBadFormat = errors.New("bad input format")

// ProductInput is a parsed "Nomi: Miqdori: Narxi: Kategoriyasi" line.
// Price and category are optional.
type ProductInput struct {
	Name     string
	Quantity int64
	Price    float64
	Category string
}

// ParseProductInput parses an add-product line. At least name and
// quantity are required; surrounding whitespace is ignored.
func ParseProductInput(line string) (ProductInput, error) {
	parts := strings.Split(line, ":")
	if len(parts) < 2 {
		return ProductInput{}, ErrBadFormat
	}
	var in ProductInput
	in.Name = strings.TrimSpace(parts[0])
	if in.Name == "" {
		return ProductInput{}, ErrBadFormat
	}
	qty, err := cast.ToInt64E(strings.TrimSpace(parts[1]))
	if err != nil || qty < 0 {
		return ProductInput{}, ErrBadFormat
	}
	in.Quantity = qty
	if len(parts) > 2 {
		raw := strings.TrimSpace(parts[2])
		if raw != "" {
			price, err := cast.ToFloat64E(raw)
			if err != nil || price < 0 {
				return ProductInput{}, ErrBadFormat
			}
			in.Price = price
		}
	}
	if len(parts) > 3 {
		in.Category = strings.TrimSpace(strings.Join(parts[3:], ":"))
	}
	return in, nil
}

// ParseRemovalInput parses a "Mahsulot nomi: Miqdori" line. Quantity
// must be a positive integer.
func ParseRemovalInput(line string) (string, int64, error) {
	parts := strings.Split(line, ":")
	if len(parts) != 2 {
		return "", 0, ErrBadFormat
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return "", 0, ErrBadFormat
	}
	qty, err := cast.ToInt64E(strings.TrimSpace(parts[1]))
	if err != nil || qty <= 0 {
		return "", 0, ErrBadFormat
	}
	return name, qty, nil
}
