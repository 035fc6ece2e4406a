package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard/internal/domain"
	apperrors "github.com/spec-kit/jobboard/pkg/util"
)

// RequireRole rejects sessions whose role differs from role.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if err := requireRole(session, role); err != nil {
			return err
		}
		return c.Next()
	}
}

// CanCreateJob allows only companies to post jobs.
func CanCreateJob(session *domain.Session) error {
	return requireRole(session, domain.RoleCompany)
}

// CanModifyJob allows only the owning company to change or remove a job.
// Callers must load the job first so a missing job surfaces as not found.
func CanModifyJob(session *domain.Session, job *domain.Job) error {
	if err := requireRole(session, domain.RoleCompany); err != nil {
		return err
	}
	if job == nil || job.CompanyID != session.SubjectID {
		return apperrors.NewForbidden("job belongs to another company")
	}
	return nil
}

// CanApply allows any authenticated principal with a known role to apply.
func CanApply(session *domain.Session) error {
	if session == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !session.Role.Valid() {
		return apperrors.NewForbidden("invalid role claim")
	}
	return nil
}

func requireRole(session *domain.Session, role domain.Role) error {
	if session == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !session.Role.Valid() {
		return apperrors.NewForbidden("invalid role claim")
	}
	if session.Role != role {
		return apperrors.NewForbidden("insufficient role")
	}
	return nil
}
