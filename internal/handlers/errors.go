package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
	"github.com/BruksfildServices01/barbershop-bot/internal/logger"
)

// writeError traduz erros de negócio para status HTTP. O resto vira 500
// e vai para o log.
func writeError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, httperr.CodeInvalidDateOrTime):
		httperr.BadRequest(c, httperr.CodeInvalidDateOrTime, "Data ou hora inválida.")
	case httperr.IsBusiness(err, httperr.CodeInvalidInput):
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Dados inválidos.")
	case httperr.IsBusiness(err, httperr.CodeBarberNotFound):
		httperr.NotFound(c, httperr.CodeBarberNotFound, "Barbeiro não encontrado.")
	case httperr.IsBusiness(err, httperr.CodeLocationNotFound):
		httperr.NotFound(c, httperr.CodeLocationNotFound, "Local não encontrado.")
	case httperr.IsStorage(err):
		logger.ErrorContext(c.Request.Context(), "storage unavailable", "path", c.FullPath(), "error", err)
		httperr.Unavailable(c, "storage_unavailable", "Armazenamento indisponível.")
	default:
		logger.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		httperr.Internal(c, "internal_error", "Erro interno.")
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}
