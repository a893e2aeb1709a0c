package services

// Result carries either data with a success message, or an error with a
// message meant for the user.
type Result[T any] struct {
	Data           T
	SuccessMessage string
	ErrorMessage   string
	Err            error
}

func (r Result[T]) IsSuccess() bool {
	return r.Err == nil
}

func Success[T any](data T, msg string) Result[T] {
	return Result[T]{Data: data, SuccessMessage: msg}
}

func Failure[T any](err error, msg string) Result[T] {
	return Result[T]{Err: err, ErrorMessage: msg}
}
