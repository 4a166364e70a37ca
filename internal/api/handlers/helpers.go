package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/net2mulu/signature-gym/internal/api/middleware"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/utils"
	"github.com/net2mulu/signature-gym/internal/pkg/validator"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

// writeServiceError sends err to the client, logging anything that is not a client error
func writeServiceError(w http.ResponseWriter, log *logger.Logger, err error, msg string) {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.Internal(msg, err)
	}
	if appErr.StatusCode >= http.StatusInternalServerError {
		log.ErrorWithErr(err, msg)
	}
	utils.WriteError(w, appErr)
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// An empty body is accepted when allowEmpty is set.
func decodeAndValidate(r *http.Request, val *validator.Validator, dst interface{}, allowEmpty bool) *errors.AppError {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if !(allowEmpty && err == io.EOF) {
			return errors.BadRequest("Invalid request body")
		}
	}
	if validationErrs := val.Validate(dst); len(validationErrs) > 0 {
		return errors.ValidationError("Validation failed", validationErrs)
	}
	return nil
}

// requireUser returns the authenticated member or writes 401
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Authentication required"))
		return 0, false
	}
	return userID, true
}
