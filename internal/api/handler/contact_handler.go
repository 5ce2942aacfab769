package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/contactkeep/contacts-api/internal/api/metrics"
	"github.com/contactkeep/contacts-api/internal/core/ports"
)

// ContactHandler handles HTTP requests for contact operations. The owner id
// on every service call comes from the resolved request identity.
type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// List handles GET /contacts with optional search, skip and limit parameters.
//
// @Summary      List or search contacts
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Partial match on first name, last name or email"
// @Param        skip    query     int     false  "Number of records to skip"
// @Param        limit   query     int     false  "Maximum records to return (capped at 100)"
// @Success      200     {array}   contactResponse
// @Failure      401     {object}  map[string]string
// @Router       /contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	search := c.QueryParam("search")

	contacts, err := h.service.List(c.Request().Context(), ports.ListContactsInput{
		OwnerID: user.ID,
		Search:  search,
		Skip:    skip,
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	op := "list"
	if search != "" {
		op = "search"
	}
	metrics.ContactOpsTotal.WithLabelValues(op).Inc()
	return c.JSON(http.StatusOK, toContactResponses(contacts))
}

// Birthdays handles GET /contacts/birthdays.
//
// @Summary      Contacts with a birthday in the next seven days
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   contactResponse
// @Failure      401  {object}  map[string]string
// @Router       /contacts/birthdays [get]
func (h *ContactHandler) Birthdays(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	contacts, err := h.service.UpcomingBirthdays(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	metrics.ContactOpsTotal.WithLabelValues("birthdays").Inc()
	return c.JSON(http.StatusOK, toContactResponses(contacts))
}

// Get handles GET /contacts/:id.
//
// @Summary      Get a single contact
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Contact id"
// @Success      200  {object}  contactResponse
// @Failure      404  {object}  map[string]string
// @Router       /contacts/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	contact, err := h.service.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.ContactOpsTotal.WithLabelValues("get").Inc()
	return c.JSON(http.StatusOK, toContactResponse(contact))
}

// Create handles POST /contacts.
//
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createContactRequest  true  "Contact details"
// @Success      201   {object}  contactResponse
// @Failure      400   {object}  map[string]string
// @Router       /contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
	}

	contact, err := h.service.Create(c.Request().Context(), ports.CreateContactInput{
		OwnerID:   user.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: birthDate,
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.ContactOpsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toContactResponse(contact))
}

// Update handles PUT /contacts/:id with a partial payload: only fields
// present in the body are changed.
//
// @Summary      Update a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Contact id"
// @Param        body  body      updateContactRequest  true  "Fields to change"
// @Success      200   {object}  contactResponse
// @Failure      404   {object}  map[string]string
// @Router       /contacts/{id} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	contact, err := h.service.Update(c.Request().Context(), user.ID, c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}

	metrics.ContactOpsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toContactResponse(contact))
}

// Delete handles DELETE /contacts/:id and returns the deleted record.
//
// @Summary      Delete a contact
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Contact id"
// @Success      200  {object}  contactResponse
// @Failure      404  {object}  map[string]string
// @Router       /contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	contact, err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.ContactOpsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, toContactResponse(contact))
}
