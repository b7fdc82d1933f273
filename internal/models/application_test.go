package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplicationAgeAt(t *testing.T) {
	app := &Application{DateOfBirth: time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"day before birthday", time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), 23},
		{"on birthday", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), 24},
		{"day after birthday", time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), 24},
		{"earlier month", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 23},
		{"later month", time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, app.AgeAt(tt.at))
		})
	}
}

func TestApplicationFullName(t *testing.T) {
	app := &Application{FirstName: "Joseph", LastName: "Mwangi"}
	assert.Equal(t, "Joseph Mwangi", app.FullName())
}

func TestInquiryFullName(t *testing.T) {
	inq := &Inquiry{FirstName: "Amina", LastName: "Yusuf"}
	assert.Equal(t, "Amina Yusuf", inq.FullName())
}
