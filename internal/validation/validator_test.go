package validation

import "testing"

type signupLike struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"max=5"`
	Password  string `json:"password" validate:"required"`
	Internal  string `json:"-"`
}

func TestStruct_Valid(t *testing.T) {
	t.Parallel()

	if errs := Struct(signupLike{Email: "a@example.com", FirstName: "Zoë", Password: "x"}); errs != nil {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestStruct_FieldErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input signupLike
		want  FieldErrors
	}{
		{
			name:  "all missing",
			input: signupLike{},
			want: FieldErrors{
				"email":    "This field is required.",
				"password": "This field is required.",
			},
		},
		{
			name:  "bad email",
			input: signupLike{Email: "not-an-email", Password: "x"},
			want:  FieldErrors{"email": "Enter a valid email address."},
		},
		{
			name:  "too long name",
			input: signupLike{Email: "a@example.com", FirstName: "Maximilian", Password: "x"},
			want:  FieldErrors{"first_name": "Ensure this field has no more than 5 characters."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Struct(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Struct() = %v, want %v", got, tt.want)
			}
			for field, msg := range tt.want {
				if got[field] != msg {
					t.Errorf("field %s: got %q, want %q", field, got[field], msg)
				}
			}
		})
	}
}

func TestGet_Singleton(t *testing.T) {
	t.Parallel()

	if Get() != Get() {
		t.Error("Get should return the same instance")
	}
}
