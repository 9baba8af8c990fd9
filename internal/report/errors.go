package report

import (
	"errors"
	"fmt"
)

// Kind задаёт категорию ошибки шлюза отчётов.
type Kind int

const (
	// KindInternal для всего непредвиденного.
	KindInternal Kind = iota
	// KindInvalidInput: некорректный или отсутствующий период, неверный метод.
	KindInvalidInput
	// KindUnauthorized: нет токена или токен не прошёл проверку.
	KindUnauthorized
	// KindQueryExecutionFailed: ошибка аналитического хранилища.
	KindQueryExecutionFailed
)

// Sentinel-ошибки для errors.Is по категориям.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrQueryExecutionFailed = errors.New("query execution failed")
	ErrInternal             = errors.New("internal error")
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindQueryExecutionFailed:
		return "query_execution_failed"
	default:
		return "internal"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindUnauthorized:
		return ErrUnauthorized
	case KindQueryExecutionFailed:
		return ErrQueryExecutionFailed
	default:
		return ErrInternal
	}
}

// Error описывает ошибку шлюза. Msg уходит клиенту, Err остаётся в логах.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// NewError создаёт ошибку заданной категории.
func NewError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap возвращает и причину, и sentinel категории, так что работают
// errors.Is(err, ErrQueryExecutionFailed) и errors.Is(err, <причина>).
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind.sentinel(), e.Err}
	}
	return []error{e.Kind.sentinel()}
}

// AsError приводит любую ошибку к *Error. Неизвестные ошибки становятся KindInternal.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr
	}
	return NewError(KindInternal, "internal error", err)
}
