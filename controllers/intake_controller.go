package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Macro-Tracker-Platform/intake-service/models"
	"github.com/Macro-Tracker-Platform/intake-service/services"
)

type intakeBody struct {
	FoodID   string               `json:"food_id" binding:"required"`
	Date     string               `json:"date" binding:"required"`
	Period   models.IntakePeriod  `json:"period"`
	Amount   int                  `json:"amount" binding:"required,gt=0"`
	UnitType *models.UnitType     `json:"unit_type"`
}

func SaveIntake(c *gin.Context) {
	var body intakeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	intake, err := intakeService().Save(c.Request.Context(), services.IntakeRequest{
		FoodID:   body.FoodID,
		Date:     date,
		Period:   body.Period,
		Amount:   body.Amount,
		UnitType: body.UnitType,
	}, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, intake)
}

func ListIntakes(c *gin.Context) {
	svc := intakeService()
	if raw := c.Query("date"); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
			return
		}
		intakes, err := svc.FindByDate(c.Request.Context(), &date, currentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, intakes)
		return
	}

	intakes, err := svc.FindByDate(c.Request.Context(), nil, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, intakes)
}

type updateIntakeBody struct {
	Date     *string              `json:"date"`
	Period   *models.IntakePeriod `json:"period"`
	Amount   *int                 `json:"amount"`
	UnitType *models.UnitType     `json:"unit_type"`
}

func UpdateIntake(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid intake id"})
		return
	}
	var body updateIntakeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := services.UpdateIntakeRequest{
		Period:   body.Period,
		Amount:   body.Amount,
		UnitType: body.UnitType,
	}
	if body.Date != nil {
		date, err := parseDate(*body.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
			return
		}
		req.Date = &date
	}

	intake, err := intakeService().Update(c.Request.Context(), uint(id), req, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, intake)
}

func DeleteIntake(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid intake id"})
		return
	}
	if err := intakeService().DeleteByID(c.Request.Context(), uint(id), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func UndoIntakeGroup(c *gin.Context) {
	groupID := c.Param("groupId")
	if groupID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "group id required"})
		return
	}
	if err := intakeService().UndoIntakeGroup(c.Request.Context(), groupID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func GetDailySummary(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter required"})
		return
	}
	date, err := parseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	summary, err := services.NewSummaryService(intakeService()).
		DailySummary(c.Request.Context(), currentUserID(c), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
