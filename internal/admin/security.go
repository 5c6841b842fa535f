package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parishadmk/logstream/internal/admin/apierror"
	"github.com/parishadmk/logstream/internal/security/scram"
)

// credentialRequest is the body of credential create/update calls. Create
// also carries the username; update takes it from the path.
type credentialRequest struct {
	Username  *string `json:"username"`
	Algorithm *string `json:"algorithm"`
	Password  *string `json:"password"`
}

// parseCredential validates the algorithm selection and derives the secret
// material. Create and update share this path so the two cannot diverge.
func parseCredential(ctx *gin.Context) (credentialRequest, scram.Credential, error) {
	var req credentialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return req, scram.Credential{}, apierror.New(apierror.BadRequest, "Not an object")
	}
	if req.Algorithm == nil {
		return req, scram.Credential{}, apierror.New(apierror.BadRequest, "String algorithm missing")
	}
	if req.Password == nil {
		return req, scram.Credential{}, apierror.New(apierror.BadRequest, "String password missing")
	}

	algorithm, ok := scram.AlgorithmByName(*req.Algorithm)
	if !ok {
		return req, scram.Credential{}, apierror.New(apierror.BadRequest,
			"Unknown scram algorithm: %s", *req.Algorithm)
	}

	cred, err := algorithm.MakeCredentials(*req.Password, algorithm.MinIterations)
	if err != nil {
		return req, scram.Credential{}, apierror.New(apierror.Internal,
			"Deriving credential: %s", err.Error())
	}
	return req, cred, nil
}

func (s *Server) handleCreateUser(ctx *gin.Context) {
	req, cred, err := parseCredential(ctx)
	if err != nil {
		abortWith(ctx, err)
		return
	}
	if req.Username == nil || *req.Username == "" {
		abortWith(ctx, apierror.New(apierror.BadRequest, "String username missing"))
		return
	}

	secCtx, cancel := context.WithTimeout(ctx.Request.Context(), s.cfg.SecurityTimeout)
	defer cancel()
	if err := s.controller.Security().CreateUser(secCtx, *req.Username, cred); err != nil {
		s.log.Debugw("create user failed", "user", *req.Username, "error", err)
		abortWith(ctx, apierror.New(apierror.BadRequest, "Creating user: %s", err.Error()))
		return
	}
	ctx.Status(http.StatusOK)
}

func (s *Server) handleUpdateUser(ctx *gin.Context) {
	user := ctx.Param("user")
	_, cred, err := parseCredential(ctx)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	secCtx, cancel := context.WithTimeout(ctx.Request.Context(), s.cfg.SecurityTimeout)
	defer cancel()
	if err := s.controller.Security().UpdateUser(secCtx, user, cred); err != nil {
		s.log.Debugw("update user failed", "user", user, "error", err)
		abortWith(ctx, apierror.New(apierror.BadRequest, "Updating user: %s", err.Error()))
		return
	}
	ctx.Status(http.StatusOK)
}

func (s *Server) handleDeleteUser(ctx *gin.Context) {
	user := ctx.Param("user")

	secCtx, cancel := context.WithTimeout(ctx.Request.Context(), s.cfg.SecurityTimeout)
	defer cancel()
	if err := s.controller.Security().DeleteUser(secCtx, user); err != nil {
		s.log.Debugw("delete user failed", "user", user, "error", err)
		abortWith(ctx, apierror.New(apierror.BadRequest, "Deleting user: %s", err.Error()))
		return
	}
	ctx.Status(http.StatusOK)
}

// handleListUsers enumerates the credential store's current snapshot. Local
// read, no proposal, no deadline.
func (s *Server) handleListUsers(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, s.controller.Credentials().Users())
}
