package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferenceSetValidate(t *testing.T) {
	t.Parallel()

	valid := PreferenceSet{
		Subject:       "Math",
		Level:         "University",
		LearningStyle: "Auditory",
		Language:      "Spanish",
	}

	t.Run("valid set passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid.Validate())
	})

	t.Run("background is optional", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.Background = ""
		assert.NoError(t, p.Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*PreferenceSet)
		wantErr error
	}{
		{"empty subject", func(p *PreferenceSet) { p.Subject = "" }, ErrEmptySubject},
		{"whitespace subject", func(p *PreferenceSet) { p.Subject = "  \t" }, ErrEmptySubject},
		{"empty level", func(p *PreferenceSet) { p.Level = "" }, ErrEmptyLevel},
		{"empty learning style", func(p *PreferenceSet) { p.LearningStyle = "" }, ErrEmptyLearningStyle},
		{"empty language", func(p *PreferenceSet) { p.Language = "" }, ErrEmptyLanguage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := valid
			tc.mutate(&p)
			err := p.Validate()
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestPreferenceSetValidateForQuiz(t *testing.T) {
	t.Parallel()

	t.Run("only subject and level are required", func(t *testing.T) {
		t.Parallel()
		p := PreferenceSet{Subject: "Math", Level: "University"}
		assert.NoError(t, p.ValidateForQuiz())
	})

	t.Run("missing level fails", func(t *testing.T) {
		t.Parallel()
		p := PreferenceSet{Subject: "Math"}
		assert.ErrorIs(t, p.ValidateForQuiz(), ErrEmptyLevel)
	})
}
