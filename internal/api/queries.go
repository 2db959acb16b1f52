package api

import (
	"context"
	"fmt"
	"sort"

	"concert-ticketing-client/internal/models"
)

// GraphQL operations. Field sets match what the views actually render.
const (
	queryPublishedConcerts = `
  query GetPublishedConcerts {
    publishedConcerts {
      id
      title
      venue
      startAt
      endAt
      description
      status
      ticketTypes {
        id
        name
        price
        quotaTotal
        quotaSold
      }
    }
  }
`

	queryConcertByID = `
  query GetConcert($id: ID!) {
    concert(id: $id) {
      id
      title
      venue
      startAt
      endAt
      description
      status
      ticketTypes {
        id
        name
        price
        quotaTotal
        quotaSold
        salesStartAt
        salesEndAt
      }
    }
  }
`

	queryUserOrders = `
  query GetUserOrders($userId: ID!) {
    userOrders(userId: $userId) {
      id
      midtransOrderId
      status
      grossAmount
      createdAt
      expiresAt
      concert {
        id
        title
        venue
        startAt
      }
      orderItems {
        id
        qty
        unitPrice
        subtotal
        ticketType {
          name
        }
      }
    }
  }
`

	queryUserTickets = `
  query GetUserTickets($userId: ID!) {
    userTickets(userId: $userId) {
      id
      code
      status
      issuedAt
      usedAt
      concert {
        id
        title
        venue
        startAt
      }
      ticketType {
        name
        price
      }
    }
  }
`

	mutationCreateOrder = `
  mutation CreateOrder($input: CreateOrderInput!) {
    createOrder(input: $input) {
      id
      midtransOrderId
      status
      grossAmount
      createdAt
      expiresAt
      orderItems {
        id
        qty
        unitPrice
        subtotal
      }
    }
  }
`
)

// CreateOrderInput is the input for the create-order mutation
type CreateOrderInput struct {
	UserID      string                 `json:"userId"`
	ConcertID   string                 `json:"concertId"`
	GrossAmount int                    `json:"grossAmount"`
	ExpiresAt   string                 `json:"expiresAt"` // ISO-8601
	Items       []CreateOrderItemInput `json:"items"`
}

// CreateOrderItemInput is one line item of the create-order mutation
type CreateOrderItemInput struct {
	TicketTypeID string `json:"ticketTypeId"`
	Qty          int    `json:"qty"`
	UnitPrice    int    `json:"unitPrice"`
	Subtotal     int    `json:"subtotal"`
}

// CreatedOrder is the projection returned by the create-order mutation
type CreatedOrder struct {
	ID              string `json:"id"`
	MidtransOrderID string `json:"midtransOrderId"`
	Status          string `json:"status"`
	GrossAmount     int    `json:"grossAmount"`
}

// PublishedConcerts fetches all concerts open for browsing
func (c *GraphQLClient) PublishedConcerts(ctx context.Context) ([]models.Concert, error) {
	var data struct {
		PublishedConcerts []models.Concert `json:"publishedConcerts"`
	}
	if err := c.Do(ctx, queryPublishedConcerts, nil, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch concerts: %w", err)
	}
	return data.PublishedConcerts, nil
}

// ConcertByID fetches a single concert with full ticket type details
func (c *GraphQLClient) ConcertByID(ctx context.Context, id string) (*models.Concert, error) {
	var data struct {
		Concert *models.Concert `json:"concert"`
	}
	if err := c.Do(ctx, queryConcertByID, map[string]interface{}{"id": id}, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch concert: %w", err)
	}
	if data.Concert == nil {
		return nil, models.ErrConcertNotFound
	}
	return data.Concert, nil
}

// UserOrders fetches the user's orders, newest first. The backend's ordering
// is not trusted; results are re-sorted by creation time descending.
func (c *GraphQLClient) UserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	var data struct {
		UserOrders []models.Order `json:"userOrders"`
	}
	if err := c.Do(ctx, queryUserOrders, map[string]interface{}{"userId": userID}, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	orders := data.UserOrders
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedTime().After(orders[j].CreatedTime())
	})
	return orders, nil
}

// UserTickets fetches the user's tickets, newest first by issuance time
func (c *GraphQLClient) UserTickets(ctx context.Context, userID string) ([]models.Ticket, error) {
	var data struct {
		UserTickets []models.Ticket `json:"userTickets"`
	}
	if err := c.Do(ctx, queryUserTickets, map[string]interface{}{"userId": userID}, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch tickets: %w", err)
	}

	tickets := data.UserTickets
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].IssuedTime().After(tickets[j].IssuedTime())
	})
	return tickets, nil
}

// CreateOrder submits a new order to the backend. The backend recomputes the
// total from the submitted items and rejects the order on any mismatch or
// quota violation; that rejection surfaces as a GraphQLError.
func (c *GraphQLClient) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreatedOrder, error) {
	var data struct {
		CreateOrder *CreatedOrder `json:"createOrder"`
	}
	if err := c.Do(ctx, mutationCreateOrder, map[string]interface{}{"input": input}, &data); err != nil {
		return nil, err
	}
	if data.CreateOrder == nil {
		return nil, fmt.Errorf("backend returned no order")
	}
	return data.CreateOrder, nil
}
