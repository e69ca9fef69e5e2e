package bot

import (
	"errors"
	"testing"
)

func TestParseProductInput(t *testing.T) {
	tests := []struct {
		line string
		want ProductInput
	}{
		{"Kola: 100: 8000: Ichimliklar", ProductInput{Name: "Kola", Quantity: 100, Price: 8000, Category: "Ichimliklar"}},
		{"Non: 50: 3000: Non mahsulotlari", ProductInput{Name: "Non", Quantity: 50, Price: 3000, Category: "Non mahsulotlari"}},
		{"Sut: 20", ProductInput{Name: "Sut", Quantity: 20}},
		{"Suv: 10: : ", ProductInput{Name: "Suv", Quantity: 10}},
		{"  Olma :  7 : 1500 ", ProductInput{Name: "Olma", Quantity: 7, Price: 1500}},
	}
	for _, tt := range tests {
		got, err := ParseProductInput(tt.line)
		if err != nil {
			t.Errorf("ParseProductInput(%q): %v", tt.line, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseProductInput(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func TestParseProductInputRejects(t *testing.T) {
	for _, line := range []string{
		"",
		"Kola",
		": 10",
		"Kola: abc",
		"Kola: -5",
		"Kola: 10: -100",
		"Kola: 10: narx",
	} {
		if _, err := ParseProductInput(line); !errors.Is(err, ErrBadFormat) {
			t.Errorf("ParseProductInput(%q) err = %v, want ErrBadFormat", line, err)
		}
	}
}

func TestParseRemovalInput(t *testing.T) {
	name, qty, err := ParseRemovalInput("Kola: 10")
	if err != nil {
		t.Fatalf("ParseRemovalInput: %v", err)
	}
	if name != "Kola" || qty != 10 {
		t.Errorf("got (%q, %d)", name, qty)
	}
}

func TestParseRemovalInputRejects(t *testing.T) {
	for _, line := range []string{
		"",
		"Kola",
		"Kola: 0",
		"Kola: -3",
		"Kola: ikki",
		"Kola: 5: 3",
		": 5",
	} {
		if _, _, err := ParseRemovalInput(line); !errors.Is(err, ErrBadFormat) {
			t.Errorf("ParseRemovalInput(%q) err = %v, want ErrBadFormat", line, err)
		}
	}
}
