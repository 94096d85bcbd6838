package handlers

import (
	"errors"
	"strconv"

	"kisanmandi_backend/models"
	"kisanmandi_backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TransactionHandler struct {
	DB *gorm.DB

	// Public checkout key returned to buyers so the client can open the
	// payment widget.
	RazorpayKeyID string
}

func NewTransactionHandler(db *gorm.DB, razorpayKeyID string) *TransactionHandler {
	return &TransactionHandler{DB: db, RazorpayKeyID: razorpayKeyID}
}

// CreateTransactionRequest
type CreateTransactionRequest struct {
	CropID            uint    `json:"crop_id"`
	Quantity          float64 `json:"quantity"`
	AgreementAccepted bool    `json:"agreement_accepted"`
}

// UpdatePaymentRequest. Omitted fields take the razorpay defaults.
type UpdatePaymentRequest struct {
	Status          string `json:"status"`
	Method          string `json:"method"`
	RazorpayOrderID string `json:"razorpay_order_id"`
}

// CreateTransaction - POST /api/transactions
// Total price is snapshotted from the listing's current unit price and
// never recomputed. Requested quantity is not checked against
// availability; settlement clamps the listing at sold.
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	identity, err := utils.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var crop models.Crop
	if err := h.DB.First(&crop, req.CropID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Crop not found"})
	}

	transaction := models.Transaction{
		BuyerID:           identity.UserID,
		CropID:            crop.ID,
		Quantity:          req.Quantity,
		TotalPrice:        req.Quantity * crop.PricePerUnit,
		PaymentStatus:     models.PaymentPending,
		DeliveryStatus:    models.DeliveryPending,
		AgreementAccepted: req.AgreementAccepted,
	}

	if err := h.DB.Create(&transaction).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create transaction"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":         "Transaction created",
		"transaction_id":  transaction.ID,
		"total_price":     transaction.TotalPrice,
		"razorpay_key_id": h.RazorpayKeyID,
	})
}

// GetTransaction - GET /api/transactions/:id
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	if _, err := utils.IdentityFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, _ := strconv.Atoi(c.Params("id"))
	var transaction models.Transaction
	if err := h.DB.Preload("Crop").First(&transaction, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	return c.JSON(fiber.Map{"data": transaction})
}

// UpdatePayment - POST /api/transactions/:id/payment
// The whole settlement runs in one database transaction so that
// concurrent completions serialize on the listing row.
func (h *TransactionHandler) UpdatePayment(c *fiber.Ctx) error {
	if _, err := utils.IdentityFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, _ := strconv.Atoi(c.Params("id"))

	var req UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	status := models.PaymentCompleted
	if req.Status != "" {
		status = models.PaymentStatus(req.Status)
		if !status.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment status"})
		}
	}

	method := req.Method
	if method == "" {
		method = "razorpay"
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		if err := tx.First(&transaction, id).Error; err != nil {
			return err
		}

		// Quantity is decremented only on the transition into completed,
		// not on a repeated completed update.
		settle := status == models.PaymentCompleted &&
			transaction.PaymentStatus != models.PaymentCompleted

		transaction.PaymentStatus = status
		transaction.PaymentMethod = method
		if req.RazorpayOrderID != "" {
			transaction.RazorpayOrderID = req.RazorpayOrderID
		}

		if err := tx.Save(&transaction).Error; err != nil {
			return err
		}

		if settle {
			var crop models.Crop
			if err := tx.First(&crop, transaction.CropID).Error; err != nil {
				return err
			}
			crop.Quantity -= transaction.Quantity
			if crop.Quantity <= 0 {
				crop.Status = models.CropSold
			}
			if err := tx.Save(&crop).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update payment"})
	}

	return c.JSON(fiber.Map{"message": "Payment updated"})
}
