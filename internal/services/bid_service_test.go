package services

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/bid2ship/bid2ship/internal/models"
)

func TestCreateBid(t *testing.T) {
	_, shipmentService, bidService := newTestEnv()
	shipper := &models.User{ID: "shipper-1", Role: models.ShipperRole}
	driver := &models.User{ID: "driver-1", Role: models.DriverRole}

	shipment, err := shipmentService.CreateShipment(context.Background(), shipper, validShipmentRequest())
	if err != nil {
		t.Fatalf("creation failed: %v", err)
	}

	bid, err := bidService.CreateBid(context.Background(), driver, models.BidRequest{ShipmentID: shipment.ID, Amount: 750, Message: "Can pick up today"})
	if err != nil {
		t.Fatalf("expected successful bid, got %v", err)
	}
	if bid.Status != models.PendingBid {
		t.Errorf("new bid must be pending, got %s", bid.Status)
	}
	if bid.DriverID != "driver-1" {
		t.Errorf("expected driver-1 as author, got %s", bid.DriverID)
	}
}

func TestCreateBidRequiresDriverRole(t *testing.T) {
	_, _, bidService := newTestEnv()
	shipper := &models.User{ID: "shipper-1", Role: models.ShipperRole}

	_, err := bidService.CreateBid(context.Background(), shipper, models.BidRequest{ShipmentID: "shipment-1", Amount: 750})
	errorResponse, ok := err.(*models.ErrorResponse)
	if !ok {
		t.Fatalf("expected ErrorResponse, got %v", err)
	}
	if errorResponse.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", errorResponse.StatusCode)
	}
}

func TestCreateBidValidation(t *testing.T) {
	_, _, bidService := newTestEnv()
	driver := &models.User{ID: "driver-1", Role: models.DriverRole}

	tests := []struct {
		name string
		req  models.BidRequest
	}{
		{"missing shipment id", models.BidRequest{Amount: 750}},
		{"zero amount", models.BidRequest{ShipmentID: "shipment-1", Amount: 0}},
		{"negative amount", models.BidRequest{ShipmentID: "shipment-1", Amount: -50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bidService.CreateBid(context.Background(), driver, tt.req)
			errorResponse, ok := err.(*models.ErrorResponse)
			if !ok {
				t.Fatalf("expected ErrorResponse, got %v", err)
			}
			if errorResponse.StatusCode != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", errorResponse.StatusCode)
			}
		})
	}
}

func TestCreateBidShipmentNotFound(t *testing.T) {
	_, _, bidService := newTestEnv()
	driver := &models.User{ID: "driver-1", Role: models.DriverRole}

	_, err := bidService.CreateBid(context.Background(), driver, models.BidRequest{ShipmentID: "missing", Amount: 750})
	errorResponse, ok := err.(*models.ErrorResponse)
	if !ok {
		t.Fatalf("expected ErrorResponse, got %v", err)
	}
	if errorResponse.Code != models.CodeShipmentNotFound {
		t.Errorf("expected code %s, got %s", models.CodeShipmentNotFound, errorResponse.Code)
	}
	if errorResponse.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", errorResponse.StatusCode)
	}
}

func TestCreateBidDuplicate(t *testing.T) {
	_, shipmentService, bidService := newTestEnv()
	shipper := &models.User{ID: "shipper-1", Role: models.ShipperRole}
	driver := &models.User{ID: "driver-1", Role: models.DriverRole}

	shipment, err := shipmentService.CreateShipment(context.Background(), shipper, validShipmentRequest())
	if err != nil {
		t.Fatalf("creation failed: %v", err)
	}
	if _, err = bidService.CreateBid(context.Background(), driver, models.BidRequest{ShipmentID: shipment.ID, Amount: 750}); err != nil {
		t.Fatalf("first bid failed: %v", err)
	}

	_, err = bidService.CreateBid(context.Background(), driver, models.BidRequest{ShipmentID: shipment.ID, Amount: 600, Message: "Lower offer"})
	errorResponse, ok := err.(*models.ErrorResponse)
	if !ok {
		t.Fatalf("expected ErrorResponse, got %v", err)
	}
	if errorResponse.Code != models.CodeDuplicateBid {
		t.Errorf("expected code %s, got %s", models.CodeDuplicateBid, errorResponse.Code)
	}
	if errorResponse.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", errorResponse.StatusCode)
	}
}

func TestCreateBidOnClosedShipment(t *testing.T) {
	_, shipmentService, bidService := newTestEnv()
	shipper := &models.User{ID: "shipper-1", Role: models.ShipperRole}
	first := &models.User{ID: "driver-1", Role: models.DriverRole}
	second := &models.User{ID: "driver-2", Role: models.DriverRole}

	shipment, err := shipmentService.CreateShipment(context.Background(), shipper, validShipmentRequest())
	if err != nil {
		t.Fatalf("creation failed: %v", err)
	}
	bid, err := bidService.CreateBid(context.Background(), first, models.BidRequest{ShipmentID: shipment.ID, Amount: 750})
	if err != nil {
		t.Fatalf("bid failed: %v", err)
	}
	if err = bidService.AcceptBid(context.Background(), shipper, bid.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	_, err = bidService.CreateBid(context.Background(), second, models.BidRequest{ShipmentID: shipment.ID, Amount: 600})
	errorResponse, ok := err.(*models.ErrorResponse)
	if !ok {
		t.Fatalf("expected ErrorResponse, got %v", err)
	}
	if errorResponse.Code != models.CodeShipmentNotOpen {
		t.Errorf("expected code %s, got %s", models.CodeShipmentNotOpen, errorResponse.Code)
	}
}

func TestGetMyBidsOrder(t *testing.T) {
	_, shipmentService, bidService := newTestEnv()
	shipper := &models.User{ID: "shipper-1", Role: models.ShipperRole}
	driver := &models.User{ID: "driver-1", Role: models.DriverRole}

	for i := 0; i < 3; i++ {
		shipment, err := shipmentService.CreateShipment(context.Background(), shipper, validShipmentRequest())
		if err != nil {
			t.Fatalf("creation failed: %v", err)
		}
		if _, err = bidService.CreateBid(context.Background(), driver, models.BidRequest{ShipmentID: shipment.ID, Amount: float64(500 + i)}); err != nil {
			t.Fatalf("bid failed: %v", err)
		}
	}

	bids, err := bidService.GetMyBids(context.Background(), driver, 100, 0)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(bids) != 3 {
		t.Fatalf("expected 3 bids, got %d", len(bids))
	}
	for i := 1; i < len(bids); i++ {
		if bids[i].CreatedAt.After(bids[i-1].CreatedAt) {
			t.Fatal("bids must be ordered newest first")
		}
	}
}

func TestGetMyBidsRequiresDriverRole(t *testing.T) {
	_, _, bidService := newTestEnv()
	shipper := &models.User{ID: "shipper-1", Role: models.ShipperRole}

	_, err := bidService.GetMyBids(context.Background(), shipper, 100, 0)
	errorResponse, ok := err.(*models.ErrorResponse)
	if !ok {
		t.Fatalf("expected ErrorResponse, got %v", err)
	}
	if errorResponse.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", errorResponse.StatusCode)
	}
}

func TestAcceptBid(t *testing.T) {
	repos, shipmentService, bidService := newTestEnv()
	shipper := &models.User{ID: "shipper-a", Role: models.ShipperRole}
	first := &models.User{ID: "driver-1", Role: models.DriverRole}
	second := &models.User{ID: "driver-2", Role: models.DriverRole}

	shipment, err := shipmentService.CreateShipment(context.Background(), shipper, validShipmentRequest())
	if err != nil {
		t.Fatalf("creation failed: %v", err)
	}
	bid1, err := bidService.CreateBid(context.Background(), first, models.BidRequest{ShipmentID: shipment.ID, Amount: 700})
	if err != nil {
		t.Fatalf("bid failed: %v", err)
	}
	bid2, err := bidService.CreateBid(context.Background(), second, models.BidRequest{ShipmentID: shipment.ID, Amount: 650})
	if err != nil {
		t.Fatalf("bid failed: %v", err)
	}

	if err = bidService.AcceptBid(context.Background(), shipper, bid2.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	accepted, err := repos.bids.GetBidByID(context.Background(), bid2.ID)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if accepted.Status != models.AcceptedBid {
		t.Errorf("expected accepted, got %s", accepted.Status)
	}
	rejected, err := repos.bids.GetBidByID(context.Background(), bid1.ID)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if rejected.Status != models.RejectedBid {
		t.Errorf("expected sibling rejected, got %s", rejected.Status)
	}
	closed, err := repos.shipments.GetShipmentByID(context.Background(), shipment.ID)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if closed.Status != models.BiddingClosed {
		t.Errorf("expected shipment bidding_closed, got %s", closed.Status)
	}
}

func TestAcceptBidConcurrent(t *testing.T) {
	repos, shipmentService, bidService := newTestEnv()
	shipper := &models.User{ID: "shipper-a", Role: models.ShipperRole}
	first := &models.User{ID: "driver-1", Role: models.DriverRole}
	second := &models.User{ID: "driver-2", Role: models.DriverRole}

	shipment, err := shipmentService.CreateShipment(context.Background(), shipper, validShipmentRequest())
	if err != nil {
		t.Fatalf("creation failed: %v", err)
	}
	bid1, err := bidService.CreateBid(context.Background(), first, models.BidRequest{ShipmentID: shipment.ID, Amount: 700})
	if err != nil {
		t.Fatalf("bid failed: %v", err)
	}
	bid2, err := bidService.CreateBid(context.Background(), second, models.BidRequest{ShipmentID: shipment.ID, Amount: 650})
	if err != nil {
		t.Fatalf("bid failed: %v", err)
	}

	bidIds := []string{bid1.ID, bid2.ID}
	results := make([]error, len(bidIds))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, bidId := range bidIds {
		wg.Add(1)
		go func(i int, bidId string) {
			defer wg.Done()
			<-start
			results[i] = bidService.AcceptBid(context.Background(), shipper, bidId)
		}(i, bidId)
	}
	close(start)
	wg.Wait()

	wins := 0
	for i, result := range results {
		if result == nil {
			wins++
			continue
		}
		errorResponse, ok := result.(*models.ErrorResponse)
		if !ok {
			t.Fatalf("losing decision on bid %d must fail with ErrorResponse, got %v", i, result)
		}
		if errorResponse.StatusCode != http.StatusBadRequest {
			t.Errorf("losing decision must get status 400, got %d", errorResponse.StatusCode)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning decision, got %d", wins)
	}

	accepted := 0
	for _, bidId := range bidIds {
		bid, err := repos.bids.GetBidByID(context.Background(), bidId)
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
		switch bid.Status {
		case models.AcceptedBid:
			accepted++
		case models.RejectedBid:
		default:
			t.Errorf("bid %s left in status %s", bidId, bid.Status)
		}
	}
	if accepted != 1 {
		t.Fatalf("expected exactly one accepted bid, got %d", accepted)
	}

	closed, err := repos.shipments.GetShipmentByID(context.Background(), shipment.ID)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if closed.Status != models.BiddingClosed {
		t.Errorf("expected shipment bidding_closed, got %s", closed.Status)
	}
}

func TestAcceptBidRequiresShipperRole(t *testing.T) {
	_, _, bidService := newTestEnv()
	driver := &models.User{ID: "driver-1", Role: models.DriverRole}

	err := bidService.AcceptBid(context.Background(), driver, "bid-1")
	errorResponse, ok := err.(*models.ErrorResponse)
	if !ok {
		t.Fatalf("expected ErrorResponse, got %v", err)
	}
	if errorResponse.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", errorResponse.StatusCode)
	}
}

func TestAcceptBidNotFound(t *testing.T) {
	_, _, bidService := newTestEnv()
	shipper := &models.User{ID: "shipper-1", Role: models.ShipperRole}

	err := bidService.AcceptBid(context.Background(), shipper, "missing")
	errorResponse, ok := err.(*models.ErrorResponse)
	if !ok {
		t.Fatalf("expected ErrorResponse, got %v", err)
	}
	if errorResponse.Code != models.CodeBidNotFound {
		t.Errorf("expected code %s, got %s", models.CodeBidNotFound, errorResponse.Code)
	}
	if errorResponse.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", errorResponse.StatusCode)
	}
}

func TestAcceptBidNotOwner(t *testing.T) {
	_, shipmentService, bidService := newTestEnv()
	owner := &models.User{ID: "shipper-a", Role: models.ShipperRole}
	other := &models.User{ID: "shipper-b", Role: models.ShipperRole}
	driver := &models.User{ID: "driver-1", Role: models.DriverRole}

	shipment, err := shipmentService.CreateShipment(context.Background(), owner, validShipmentRequest())
	if err != nil {
		t.Fatalf("creation failed: %v", err)
	}
	bid, err := bidService.CreateBid(context.Background(), driver, models.BidRequest{ShipmentID: shipment.ID, Amount: 750})
	if err != nil {
		t.Fatalf("bid failed: %v", err)
	}

	err = bidService.AcceptBid(context.Background(), other, bid.ID)
	errorResponse, ok := err.(*models.ErrorResponse)
	if !ok {
		t.Fatalf("expected ErrorResponse, got %v", err)
	}
	if errorResponse.Code != models.CodeNotOwner {
		t.Errorf("expected code %s, got %s", models.CodeNotOwner, errorResponse.Code)
	}
	if errorResponse.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", errorResponse.StatusCode)
	}
}

func TestAcceptBidAlreadyResolved(t *testing.T) {
	_, shipmentService, bidService := newTestEnv()
	shipper := &models.User{ID: "shipper-a", Role: models.ShipperRole}
	first := &models.User{ID: "driver-1", Role: models.DriverRole}
	second := &models.User{ID: "driver-2", Role: models.DriverRole}

	shipment, err := shipmentService.CreateShipment(context.Background(), shipper, validShipmentRequest())
	if err != nil {
		t.Fatalf("creation failed: %v", err)
	}
	bid1, err := bidService.CreateBid(context.Background(), first, models.BidRequest{ShipmentID: shipment.ID, Amount: 700})
	if err != nil {
		t.Fatalf("bid failed: %v", err)
	}
	bid2, err := bidService.CreateBid(context.Background(), second, models.BidRequest{ShipmentID: shipment.ID, Amount: 650})
	if err != nil {
		t.Fatalf("bid failed: %v", err)
	}
	if err = bidService.AcceptBid(context.Background(), shipper, bid2.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	for _, bidId := range []string{bid1.ID, bid2.ID} {
		err = bidService.AcceptBid(context.Background(), shipper, bidId)
		errorResponse, ok := err.(*models.ErrorResponse)
		if !ok {
			t.Fatalf("expected ErrorResponse, got %v", err)
		}
		if errorResponse.Code != models.CodeBidAlreadyResolved {
			t.Errorf("expected code %s, got %s", models.CodeBidAlreadyResolved, errorResponse.Code)
		}
	}
}
