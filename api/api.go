// Пакет api — OpenAPI-контракт HTTP API сервиса (openapi.yaml).
// Серверный код и модели генерируются из него в internal/api/generated.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var specYAML []byte

// Spec возвращает разобранный и провалидированный контракт.
// Разбор выполняется один раз.
var Spec = sync.OnceValues(func() (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора openapi.yaml: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("openapi.yaml не прошёл валидацию: %w", err)
	}
	return doc, nil
})
