// Package function adapts the contact API for serverless deployments that
// accept a standard net/http handler. It shares the exact router, validator
// and dispatcher with cmd/api, so the two deployment targets cannot drift.
package function

import (
	"net/http"
	"sync"

	"go-contact-backend/config"
	v1 "go-contact-backend/internal/delivery/http/v1"
	"go-contact-backend/internal/usecase"
	"go-contact-backend/pkg/mail"
	"go-contact-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var (
	initOnce sync.Once
	router   http.Handler
)

// Handler is the serverless entrypoint. Wiring happens once per cold start;
// transport selection is re-evaluated on each new instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(setup)
	router.ServeHTTP(w, r)
}

func setup() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	transport := mail.SelectTransport(cfg)

	validate := validator.New()
	validation.RegisterValidators(validate)
	contactUC := usecase.NewContactUsecase(transport, cfg, validate)

	router = v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		Config:    cfg,
	})
}
