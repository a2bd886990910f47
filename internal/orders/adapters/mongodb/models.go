package mongodb

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dinhthuw/back1/internal/orders/domain"
)

type orderDocument struct {
	ID             string           `bson:"_id"`
	UserID         string           `bson:"user_id"`
	Name           string           `bson:"name"`
	Email          string           `bson:"email"`
	Phone          string           `bson:"phone"`
	FullAddress    string           `bson:"full_address"`
	Items          []itemDocument   `bson:"items"`
	TotalPrice     float64          `bson:"total_price"`
	PaymentMethod  string           `bson:"payment_method"`
	PaymentStatus  string           `bson:"payment_status"`
	PaymentDetails *detailsDocument `bson:"payment_details,omitempty"`
	Status         string           `bson:"status"`
	CreatedAt      time.Time        `bson:"created_at"`
	UpdatedAt      time.Time        `bson:"updated_at"`
}

type itemDocument struct {
	ProductID string  `bson:"product_id"`
	Quantity  int     `bson:"quantity"`
	Price     float64 `bson:"price"`
}

type detailsDocument struct {
	TransactionID string    `bson:"transaction_id,omitempty"`
	PaymentDate   time.Time `bson:"payment_date,omitempty"`
	PaymentProof  string    `bson:"payment_proof,omitempty"`
}

func toOrderDocument(order domain.Order) *orderDocument {
	items := make([]itemDocument, len(order.Items))
	for i, item := range order.Items {
		items[i] = itemDocument{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.InexactFloat64(),
		}
	}

	doc := &orderDocument{
		ID:            order.ID,
		UserID:        order.UserID,
		Name:          order.Name,
		Email:         order.Email,
		Phone:         order.Phone,
		FullAddress:   order.Address.FullAddress,
		Items:         items,
		TotalPrice:    order.TotalPrice.InexactFloat64(),
		PaymentMethod: string(order.PaymentMethod),
		PaymentStatus: string(order.PaymentStatus),
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
	if order.PaymentDetails != nil {
		doc.PaymentDetails = toDetailsDocument(order.PaymentDetails)
	}
	return doc
}

func toDetailsDocument(details *domain.PaymentDetails) *detailsDocument {
	return &detailsDocument{
		TransactionID: details.TransactionID,
		PaymentDate:   details.PaymentDate,
		PaymentProof:  details.PaymentProof,
	}
}

func toOrderEntity(doc *orderDocument) *domain.Order {
	items := make([]domain.OrderItem, len(doc.Items))
	for i, item := range doc.Items {
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     decimal.NewFromFloat(item.Price),
		}
	}

	order := &domain.Order{
		ID:            doc.ID,
		UserID:        doc.UserID,
		Name:          doc.Name,
		Email:         doc.Email,
		Phone:         doc.Phone,
		Address:       domain.Address{FullAddress: doc.FullAddress},
		Items:         items,
		TotalPrice:    decimal.NewFromFloat(doc.TotalPrice),
		PaymentMethod: domain.PaymentMethod(doc.PaymentMethod),
		PaymentStatus: domain.PaymentStatus(doc.PaymentStatus),
		Status:        domain.OrderStatus(doc.Status),
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
	if doc.PaymentDetails != nil {
		order.PaymentDetails = &domain.PaymentDetails{
			TransactionID: doc.PaymentDetails.TransactionID,
			PaymentDate:   doc.PaymentDetails.PaymentDate,
			PaymentProof:  doc.PaymentDetails.PaymentProof,
		}
	}
	return order
}
