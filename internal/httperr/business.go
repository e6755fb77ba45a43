package httperr

import "errors"

// BusinessError é uma falha de regra de negócio identificada por código
// estável (ex.: slot_unavailable, invalid_link). Os use cases devolvem
// esses códigos e os handlers os traduzem em status HTTP.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness testa se err carrega exatamente o código dado.
func IsBusiness(err error, code string) bool {
	var be BusinessError
	return errors.As(err, &be) && be.Code == code
}
