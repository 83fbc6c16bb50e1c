package httpapi

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"rentledger/internal/auth"
	"rentledger/internal/billing"
	"rentledger/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tenantRequest struct {
	TenantName            string          `json:"tenant_name"`
	MonthlyRent           decimal.Decimal `json:"monthly_rent"`
	RentDueDay            int             `json:"rent_due_day"`
	Status                string          `json:"status"`
	MovedOutDate          string          `json:"moved_out_date"`
	LeftWithoutNoticeDate string          `json:"left_without_notice_date"`
	Utilities             []string        `json:"utilities"`
}

type generateRequest struct {
	Period string `json:"period"`
}

type utilityRequest struct {
	TenantID    uint            `json:"tenant_id"`
	UtilityType string          `json:"utility_type"`
	ChargeDate  string          `json:"charge_date"`
	Amount      decimal.Decimal `json:"amount"`
	Notes       string          `json:"notes"`
}

type paymentRequest struct {
	TenantID    uint            `json:"tenant_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	Notes       string          `json:"notes"`
}

func bind(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return &billing.ValidationError{Field: "body", Message: "must be valid JSON"}
	}
	return nil
}

func tenantID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, &billing.ValidationError{Field: "id", Message: "must be a positive integer"}
	}
	return uint(id), nil
}

// optionalDate parses s when present.
func optionalDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := billing.ParseDate(field, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r tenantRequest) input() (billing.TenantInput, error) {
	movedOut, err := optionalDate("moved_out_date", r.MovedOutDate)
	if err != nil {
		return billing.TenantInput{}, err
	}
	left, err := optionalDate("left_without_notice_date", r.LeftWithoutNoticeDate)
	if err != nil {
		return billing.TenantInput{}, err
	}
	utilities := make([]models.UtilityType, 0, len(r.Utilities))
	for _, u := range r.Utilities {
		utilities = append(utilities, models.UtilityType(u))
	}
	return billing.TenantInput{
		TenantName:            r.TenantName,
		MonthlyRent:           r.MonthlyRent,
		RentDueDay:            r.RentDueDay,
		Status:                models.TenantStatus(r.Status),
		MovedOutDate:          movedOut,
		LeftWithoutNoticeDate: left,
		Utilities:             utilities,
	}, nil
}

func (s *Server) signUp(c *fiber.Ctx) error {
	var req auth.SignUpInput
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := s.auth.SignUp(c.UserContext(), req)
	if err != nil {
		return err
	}
	return SuccessWithCode(c, fiber.StatusCreated, "account created", user)
}

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := s.auth.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	token, err := s.auth.IssueToken(user)
	if err != nil {
		return err
	}
	return Success(c, "signed in", fiber.Map{"token": token, "user": user})
}

func (s *Server) listTenants(c *fiber.Ctx) error {
	filter := billing.TenantFilter{
		Status:  models.TenantStatus(c.Query("status")),
		OrderBy: billing.TenantOrder(strings.ToLower(c.Query("order"))),
	}
	tenants, err := s.engine.ListTenants(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return Success(c, "tenants", tenants)
}

func (s *Server) createTenant(c *fiber.Ctx) error {
	var req tenantRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	tenant, err := s.engine.CreateTenant(c.UserContext(), in)
	if err != nil {
		return err
	}
	return SuccessWithCode(c, fiber.StatusCreated, "tenant created", tenant)
}

func (s *Server) getTenant(c *fiber.Ctx) error {
	id, err := tenantID(c)
	if err != nil {
		return err
	}
	tenant, err := s.engine.GetTenant(c.UserContext(), id)
	if err != nil {
		return err
	}
	return Success(c, "tenant", tenant)
}

func (s *Server) updateTenant(c *fiber.Ctx) error {
	id, err := tenantID(c)
	if err != nil {
		return err
	}
	var req tenantRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	tenant, err := s.engine.UpdateTenant(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return Success(c, "tenant updated", tenant)
}

func (s *Server) deleteTenant(c *fiber.Ctx) error {
	id, err := tenantID(c)
	if err != nil {
		return err
	}
	opts := billing.DeleteOptions{Cascade: c.QueryBool("cascade", false)}
	if err := s.engine.DeleteTenant(c.UserContext(), id, opts); err != nil {
		return err
	}
	return Success(c, "tenant deleted", nil)
}

func (s *Server) statement(c *fiber.Ctx) error {
	id, err := tenantID(c)
	if err != nil {
		return err
	}
	st, err := s.engine.ComputeStatement(c.UserContext(), id)
	if err != nil {
		return err
	}
	return Success(c, "statement", st)
}

func (s *Server) generateRent(c *fiber.Ctx) error {
	var req generateRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}
	period := s.engine.CurrentPeriod()
	if req.Period != "" {
		p, err := billing.ParsePeriod(req.Period)
		if err != nil {
			return err
		}
		period = p
	}

	n, err := s.engine.GenerateRentForPeriod(c.UserContext(), period)
	if err != nil {
		return err
	}
	return Success(c, "rent generated", fiber.Map{"period": period.String(), "count": n})
}

func (s *Server) listRent(c *fiber.Ctx) error {
	rows, err := s.engine.ListRentCharges(c.UserContext())
	if err != nil {
		return err
	}
	return Success(c, "rent charges", rows)
}

func (s *Server) listUtilities(c *fiber.Ctx) error {
	rows, err := s.engine.ListUtilityCharges(c.UserContext())
	if err != nil {
		return err
	}
	return Success(c, "utility charges", rows)
}

func (s *Server) recordUtility(c *fiber.Ctx) error {
	var req utilityRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := billing.ParseDate("charge_date", req.ChargeDate)
	if err != nil {
		return err
	}
	charge, err := s.engine.RecordUtilityCharge(c.UserContext(), billing.UtilityChargeInput{
		TenantID:    req.TenantID,
		UtilityType: models.UtilityType(req.UtilityType),
		ChargeDate:  date,
		Amount:      req.Amount,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return SuccessWithCode(c, fiber.StatusCreated, "utility charge recorded", charge)
}

func (s *Server) recordPayment(c *fiber.Ctx) error {
	var req paymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := billing.ParseDate("payment_date", req.PaymentDate)
	if err != nil {
		return err
	}
	entry, err := s.engine.RecordPayment(c.UserContext(), billing.PaymentInput{
		TenantID:    req.TenantID,
		Amount:      req.Amount,
		PaymentDate: date,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return SuccessWithCode(c, fiber.StatusCreated, "payment recorded", entry)
}

func (s *Server) ledger(c *fiber.Ctx) error {
	rows, err := s.engine.ListAllEntries(c.UserContext())
	if err != nil {
		return err
	}
	return Success(c, "ledger", rows)
}
