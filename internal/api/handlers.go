package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wutcharinth/splitbill/internal/api/dto"
	"github.com/wutcharinth/splitbill/internal/auth"
	"github.com/wutcharinth/splitbill/internal/display"
	"github.com/wutcharinth/splitbill/internal/models"
	"github.com/wutcharinth/splitbill/internal/reducer"
	"github.com/wutcharinth/splitbill/internal/service"
	"github.com/wutcharinth/splitbill/internal/storage"
)

// maxReceiptSize bounds uploaded receipt images.
const maxReceiptSize = 10 << 20 // 10 MiB

func (s *Server) createBill(c *gin.Context) {
	var req dto.CreateBillRequest
	var image []byte

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
			return
		}
		file, _, err := c.Request.FormFile("receipt")
		if err == nil {
			defer file.Close()
			image, err = io.ReadAll(io.LimitReader(file, maxReceiptSize))
			if err != nil {
				c.JSON(http.StatusBadRequest, dto.BadRequestError("failed to read receipt image"))
				return
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	bill, err := s.bills.CreateBill(c.Request.Context(), service.CreateBillInput{
		Title:        req.Title,
		Currency:     req.Currency,
		PeopleNames:  req.People,
		OwnerID:      req.OwnerID,
		ReceiptImage: image,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	token, err := s.tokens.Mint(bill.ID, false)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateBillResponse{Bill: bill, Token: token})
}

func (s *Server) getBill(c *gin.Context) {
	bill, err := s.bills.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !s.canRead(c, bill) {
		c.JSON(http.StatusForbidden, dto.ForbiddenError("bill is private"))
		return
	}

	summary, err := s.bills.Summary(c.Request.Context(), bill.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BillResponse{Bill: bill, Summary: summary})
}

func (s *Server) applyActions(c *gin.Context) {
	billID := c.Param("id")
	if !s.canEdit(c, billID) {
		c.JSON(http.StatusForbidden, dto.ForbiddenError("an edit token is required"))
		return
	}

	var req dto.ActionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}
	if len(req.Actions) == 0 {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("actions must not be empty"))
		return
	}

	actions, err := reducer.DecodeAll(req.Actions)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	bill, summary, err := s.bills.ApplyActions(c.Request.Context(), billID, actions)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BillResponse{Bill: bill, Summary: summary})
}

func (s *Server) getSummary(c *gin.Context) {
	bill, err := s.bills.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !s.canRead(c, bill) {
		c.JSON(http.StatusForbidden, dto.ForbiddenError("bill is private"))
		return
	}

	summary, err := s.bills.Summary(c.Request.Context(), bill.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) exportBill(c *gin.Context) {
	bill, err := s.bills.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !s.canRead(c, bill) {
		c.JSON(http.StatusForbidden, dto.ForbiddenError("bill is private"))
		return
	}

	data, err := s.bills.Export(c.Request.Context(), bill.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	filename := fmt.Sprintf("attachment; filename=%q", bill.Title+".xlsx")
	c.Header("Content-Disposition", filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (s *Server) shareBill(c *gin.Context) {
	billID := c.Param("id")
	if !s.canEdit(c, billID) {
		c.JSON(http.StatusForbidden, dto.ForbiddenError("an edit token is required"))
		return
	}

	var req dto.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	if req.PIN != "" {
		if err := s.bills.SetPIN(c.Request.Context(), billID, req.PIN); err != nil {
			s.respondError(c, err)
			return
		}
	}
	if _, err := s.bills.MarkShared(c.Request.Context(), billID); err != nil {
		s.respondError(c, err)
		return
	}

	token, err := s.tokens.Mint(billID, req.ReadOnly)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ShareResponse{
		Token:    token,
		ReadOnly: req.ReadOnly,
		URL:      s.shareURL(billID, token),
	})
}

func (s *Server) claimBill(c *gin.Context) {
	billID := c.Param("id")

	var req dto.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	if err := s.bills.VerifyPIN(c.Request.Context(), billID, req.PIN); err != nil {
		s.respondError(c, err)
		return
	}

	token, err := s.tokens.Mint(billID, false)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ClaimResponse{Token: token})
}

func (s *Server) getRate(c *gin.Context) {
	base := c.Query("base")
	target := c.Query("target")
	if base == "" || target == "" {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("base and target query parameters are required"))
		return
	}
	if s.rates == nil {
		c.JSON(http.StatusServiceUnavailable, dto.NewAPIError("unavailable", "exchange rates are not configured"))
		return
	}

	rate, err := s.rates.GetRate(c.Request.Context(), base, target)
	if err != nil {
		slog.Error("Rate lookup failed", "base", base, "target", target, "error", err)
		c.JSON(http.StatusBadGateway, dto.NewAPIError("upstream_error", "failed to fetch exchange rate"))
		return
	}
	c.JSON(http.StatusOK, dto.RateResponse{
		Base:   base,
		Target: target,
		Rate:   rate.Rate,
		Date:   rate.AsOfDate,
	})
}

func (s *Server) getCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CurrenciesResponse{
		Currencies: display.Currencies(s.config.PinnedCurrencies),
	})
}

// requestToken pulls the share token from the query string or a bearer header.
func requestToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}

// canRead reports whether the request may view the bill. Shared bills are
// open; private bills need a valid token for that bill.
func (s *Server) canRead(c *gin.Context, bill *models.Bill) bool {
	if bill.Visibility == models.VisibilityShared {
		return true
	}
	claims, err := s.tokens.Validate(requestToken(c))
	return err == nil && claims.BillID == bill.ID
}

// canEdit reports whether the request holds an editable token for the bill.
func (s *Server) canEdit(c *gin.Context, billID string) bool {
	claims, err := s.tokens.Validate(requestToken(c))
	return err == nil && claims.BillID == billID && !claims.ReadOnly
}

// respondError maps service errors onto HTTP status codes.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NotFoundError("bill"))
	case errors.Is(err, auth.ErrInvalidPIN), errors.Is(err, service.ErrNoPIN):
		c.JSON(http.StatusForbidden, dto.ForbiddenError("invalid PIN"))
	case errors.Is(err, auth.ErrWeakPIN),
		errors.Is(err, reducer.ErrPersonNotFound),
		errors.Is(err, reducer.ErrItemNotFound),
		errors.Is(err, reducer.ErrFeeNotFound),
		errors.Is(err, reducer.ErrDiscountNotFound),
		errors.Is(err, reducer.ErrLastPerson):
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
	default:
		slog.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
	}
}
