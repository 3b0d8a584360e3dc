package domain

// Result is the envelope every API client operation resolves to. Request
// failures and transport failures share the same shape.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func Fail[T any](message string) Result[T] {
	return Result[T]{Error: message}
}
