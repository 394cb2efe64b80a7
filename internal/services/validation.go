package services

// ValidationError は入力検証エラーです。
// Details は フィールド名 → エラーメッセージのリスト の形でクライアントに返されます。
type ValidationError struct {
	Details map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError は空のValidationErrorを作成します。
func NewValidationError() *ValidationError {
	return &ValidationError{Details: map[string][]string{}}
}

// Add はフィールドにエラーメッセージを追加します。
func (e *ValidationError) Add(field, message string) {
	e.Details[field] = append(e.Details[field], message)
}

// HasErrors は1件以上のエラーがあるかを返します。
func (e *ValidationError) HasErrors() bool {
	return len(e.Details) > 0
}
