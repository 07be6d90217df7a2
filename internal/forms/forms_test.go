package forms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostFormValidate(t *testing.T) {
	valid := PostForm{Title: "Hello", Text: "World", PubDate: "2024-03-01T12:30"}
	assert.NoError(t, valid.Validate())
	assert.Equal(t, 2024, valid.PubDateTime().Year())

	tests := []struct {
		name string
		form PostForm
	}{
		{"missing title", PostForm{Text: "x", PubDate: "2024-03-01T12:30"}},
		{"missing text", PostForm{Title: "x", PubDate: "2024-03-01T12:30"}},
		{"missing pub date", PostForm{Title: "x", Text: "y"}},
		{"malformed pub date", PostForm{Title: "x", Text: "y", PubDate: "not-a-date"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.form.Validate())
		})
	}
}

func TestCommentFormValidate(t *testing.T) {
	assert.NoError(t, CommentForm{Text: "nice"}.Validate())
	assert.Error(t, CommentForm{}.Validate())
}

func TestRegistrationFormValidate(t *testing.T) {
	valid := RegistrationForm{
		Username:  "new_user",
		Email:     "new@example.com",
		Password1: "longenough1",
		Password2: "longenough1",
	}
	assert.NoError(t, valid.Validate())

	mismatched := valid
	mismatched.Password2 = "different123"
	err := mismatched.Validate()
	assert.Error(t, err)
	assert.Contains(t, FieldErrors(err)["Password2"], "do not match")

	badUsername := valid
	badUsername.Username = "has spaces"
	assert.Error(t, badUsername.Validate())

	shortPassword := valid
	shortPassword.Password1 = "short"
	shortPassword.Password2 = "short"
	assert.Error(t, shortPassword.Validate())
}

func TestProfileFormValidate(t *testing.T) {
	assert.NoError(t, ProfileForm{Username: "someone", Email: "s@e.com"}.Validate())
	assert.Error(t, ProfileForm{Username: "someone", Email: "not-an-email"}.Validate())
	assert.Error(t, ProfileForm{Email: "s@e.com"}.Validate())
}

func TestFieldErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(nil))

	errs := FieldErrors(PostForm{}.Validate())
	assert.Contains(t, errs, "Title")
	assert.Contains(t, errs, "Text")
	assert.Contains(t, errs, "PubDate")

	plain := FieldErrors(errors.New("boom"))
	assert.Equal(t, "boom", plain["__all__"])
}
