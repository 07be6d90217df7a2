// Package forms declares the HTML form payloads and their validation
// rules. Handlers re-render the page with FieldErrors when validation
// fails instead of answering with an error status.
package forms

import (
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// pubDateLayout matches the value of an HTML datetime-local input.
const pubDateLayout = "2006-01-02T15:04"

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// PostForm carries the create/edit post payload.
type PostForm struct {
	Title       string `form:"title"`
	Text        string `form:"text"`
	PubDate     string `form:"pub_date"`
	CategoryID  uint   `form:"category_id"`
	LocationID  uint   `form:"location_id"`
	IsPublished bool   `form:"is_published"`
}

func (f PostForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 256),
		),
		validation.Field(&f.Text,
			validation.Required.Error("text is required"),
		),
		validation.Field(&f.PubDate,
			validation.Required.Error("publication date is required"),
			validation.Date(pubDateLayout).Error("publication date must look like 2006-01-02T15:04"),
		),
	)
}

// PubDateTime parses the submitted publication date. Call only after
// Validate has passed.
func (f PostForm) PubDateTime() time.Time {
	t, _ := time.Parse(pubDateLayout, f.PubDate)
	return t
}

// CommentForm carries the add/edit comment payload.
type CommentForm struct {
	Text string `form:"text"`
}

func (f CommentForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Text,
			validation.Required.Error("comment text is required"),
		),
	)
}

// LoginForm carries the login payload.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required.Error("username is required")),
		validation.Field(&f.Password, validation.Required.Error("password is required")),
	)
}

// RegistrationForm carries the sign-up payload.
type RegistrationForm struct {
	Username  string `form:"username"`
	Email     string `form:"email"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Password1 string `form:"password1"`
	Password2 string `form:"password2"`
}

func (f RegistrationForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username,
			validation.Required.Error("username is required"),
			validation.Length(1, 150),
			validation.Match(usernamePattern).Error("username may contain letters, digits and @/./+/-/_ only"),
		),
		validation.Field(&f.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&f.Password1,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&f.Password2,
			validation.Required.Error("password confirmation is required"),
			validation.In(f.Password1).Error("passwords do not match"),
		),
	)
}

// ProfileForm carries the self-service profile edit payload. The account
// being edited is always the authenticated one.
type ProfileForm struct {
	Username  string `form:"username"`
	Email     string `form:"email"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
}

func (f ProfileForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username,
			validation.Required.Error("username is required"),
			validation.Length(1, 150),
			validation.Match(usernamePattern).Error("username may contain letters, digits and @/./+/-/_ only"),
		),
		validation.Field(&f.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
	)
}

// FieldErrors flattens a validation error into a field-to-message map for
// template rendering. Non-validation errors map to a single form-level
// entry.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	out := make(map[string]string)
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			out[field] = ferr.Error()
		}
		return out
	}
	out["__all__"] = err.Error()
	return out
}
