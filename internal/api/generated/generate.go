// Пакет generated — chi-сервер и модели, сгенерированные oapi-codegen
// из api/openapi.yaml. Файл server.gen.go вручную не редактируется.
package generated

//go:generate oapi-codegen --config=../../../api/oapi-codegen.yaml ../../../api/openapi.yaml
