package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"konnection/backend/internal/models"
	"konnection/backend/internal/services"
)

// RoomHandler handles REST requests for rooms.
type RoomHandler struct {
	roomService  services.IRoomService
	queryService services.IRoomQueryService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(roomService services.IRoomService, queryService services.IRoomQueryService) *RoomHandler {
	return &RoomHandler{
		roomService:  roomService,
		queryService: queryService,
	}
}

// CreateRoom handles POST /api/v1/rooms (multipart form).
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected multipart form data"})
		return
	}

	var in services.CreateRoomInput
	address := formValue(form, "address")
	if address != nil {
		in.Address = *address
	}

	monthlyRent, err := formInt(form, "monthlyRent")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if monthlyRent != nil {
		in.MonthlyRent = *monthlyRent
	}
	deposit, err := formInt(form, "deposit")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if deposit != nil {
		in.Deposit = *deposit
	}
	if roomType := formValue(form, "roomType"); roomType != nil {
		in.RoomType = models.RoomType(strings.ToUpper(strings.TrimSpace(*roomType)))
	}

	patch, httpErr := parseRoomPatch(form)
	if httpErr != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": httpErr})
		return
	}
	in.MaintenanceFee = patch.MaintenanceFee
	in.AreaM2 = patch.AreaM2
	in.RoomCount = patch.RoomCount
	in.BathroomCount = patch.BathroomCount
	in.Direction = patch.Direction
	in.HeatingType = patch.HeatingType
	in.EntranceType = patch.EntranceType
	in.BuildingUse = patch.BuildingUse
	in.ApprovalDate = patch.ApprovalDate
	in.Floor = patch.Floor
	in.TotalFloors = patch.TotalFloors
	in.ParkingAvailable = patch.ParkingAvailable
	in.TotalParkingSpots = patch.TotalParkingSpots
	in.AvailableFrom = patch.AvailableFrom
	in.Description = patch.Description
	in.LandlordName = patch.LandlordName
	in.LandlordPhone = patch.LandlordPhone
	in.BusinessRegNo = patch.BusinessRegNo
	if patch.Options != nil {
		in.Options = *patch.Options
	}
	if patch.SecurityFacilities != nil {
		in.SecurityFacilities = *patch.SecurityFacilities
	}
	if uploader := formValue(form, "uploaderId"); uploader != nil {
		in.UploaderID = *uploader
	}

	files, err := formFiles(form, "images")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in.Images = files

	room, err := h.roomService.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// UpdateRoom handles PUT /api/v1/rooms/:roomId (multipart form, patch
// semantics: absent fields are left alone).
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, ok := roomIDParam(c)
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected multipart form data"})
		return
	}

	var in services.UpdateRoomInput
	in.Address = formValue(form, "address")
	if in.MonthlyRent, err = formInt(form, "monthlyRent"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Deposit, err = formInt(form, "deposit"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if roomType := formValue(form, "roomType"); roomType != nil {
		rt := models.RoomType(strings.ToUpper(strings.TrimSpace(*roomType)))
		in.RoomType = &rt
	}

	patch, httpErr := parseRoomPatch(form)
	if httpErr != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": httpErr})
		return
	}
	in.MaintenanceFee = patch.MaintenanceFee
	in.AreaM2 = patch.AreaM2
	in.RoomCount = patch.RoomCount
	in.BathroomCount = patch.BathroomCount
	in.Direction = patch.Direction
	in.HeatingType = patch.HeatingType
	in.EntranceType = patch.EntranceType
	in.BuildingUse = patch.BuildingUse
	in.ApprovalDate = patch.ApprovalDate
	in.Floor = patch.Floor
	in.TotalFloors = patch.TotalFloors
	in.ParkingAvailable = patch.ParkingAvailable
	in.TotalParkingSpots = patch.TotalParkingSpots
	in.AvailableFrom = patch.AvailableFrom
	in.Description = patch.Description
	in.LandlordName = patch.LandlordName
	in.LandlordPhone = patch.LandlordPhone
	in.BusinessRegNo = patch.BusinessRegNo
	in.Options = patch.Options
	in.SecurityFacilities = patch.SecurityFacilities
	if uploader := formValue(form, "uploaderId"); uploader != nil {
		in.UploaderID = *uploader
	}

	if in.DeleteImageIDs, err = formInt64List(form, "deleteImageIds"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.NewImages, err = formFiles(form, "newImages"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.roomService.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// GetRoom handles GET /api/v1/rooms/:roomId.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, ok := roomIDParam(c)
	if !ok {
		return
	}
	room, err := h.roomService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// ListRooms handles GET /api/v1/rooms.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// DeleteRoom handles DELETE /api/v1/rooms/:roomId.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, ok := roomIDParam(c)
	if !ok {
		return
	}
	if err := h.roomService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchRooms handles GET /api/v1/rooms/search.
func (h *RoomHandler) SearchRooms(c *gin.Context) {
	filter := models.RoomFilter{
		Location: c.Query("location"),
		Floor:    models.ParseFloorFilter(c.Query("floor")),
	}

	var err error
	if filter.MonthlyMin, err = queryInt(c, "monthlyMin"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if filter.MonthlyMax, err = queryInt(c, "monthlyMax"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if filter.DepositMin, err = queryInt(c, "depositMin"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if filter.DepositMax, err = queryInt(c, "depositMax"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if parking := c.Query("parkingOnly"); parking != "" {
		v, err := strconv.ParseBool(parking)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parkingOnly"})
			return
		}
		filter.ParkingOnly = v
	}

	rooms, err := h.queryService.Search(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// roomPatch collects the optional room fields shared by create and update.
type roomPatch struct {
	MaintenanceFee     *int
	AreaM2             *float64
	RoomCount          *int
	BathroomCount      *int
	Direction          *models.Direction
	HeatingType        *models.HeatingType
	EntranceType       *models.EntranceType
	BuildingUse        *string
	ApprovalDate       *string
	Floor              *int
	TotalFloors        *int
	ParkingAvailable   *bool
	TotalParkingSpots  *int
	AvailableFrom      *string
	Description        *string
	Options            *[]string
	SecurityFacilities *[]string
	LandlordName       *string
	LandlordPhone      *string
	BusinessRegNo      *string
}

func parseRoomPatch(form *multipart.Form) (roomPatch, string) {
	var p roomPatch
	var err error

	if p.MaintenanceFee, err = formInt(form, "maintenanceFee"); err != nil {
		return p, err.Error()
	}
	if p.AreaM2, err = formFloat(form, "area"); err != nil {
		return p, err.Error()
	}
	if p.RoomCount, err = formInt(form, "roomCount"); err != nil {
		return p, err.Error()
	}
	if p.BathroomCount, err = formInt(form, "bathroomCount"); err != nil {
		return p, err.Error()
	}
	if v := formValue(form, "direction"); v != nil {
		d := models.Direction(strings.ToUpper(strings.TrimSpace(*v)))
		p.Direction = &d
	}
	if v := formValue(form, "heatingType"); v != nil {
		h := models.HeatingType(strings.ToUpper(strings.TrimSpace(*v)))
		p.HeatingType = &h
	}
	if v := formValue(form, "entranceType"); v != nil {
		e := models.EntranceType(strings.ToUpper(strings.TrimSpace(*v)))
		p.EntranceType = &e
	}
	p.BuildingUse = formValue(form, "buildingUse")
	if p.ApprovalDate, err = formDate(form, "approvalDate"); err != nil {
		return p, err.Error()
	}
	if p.Floor, err = formInt(form, "floor"); err != nil {
		return p, err.Error()
	}
	if p.TotalFloors, err = formInt(form, "totalFloors"); err != nil {
		return p, err.Error()
	}
	if p.ParkingAvailable, err = formBool(form, "parkingAvailable"); err != nil {
		return p, err.Error()
	}
	if p.TotalParkingSpots, err = formInt(form, "totalParkingSpots"); err != nil {
		return p, err.Error()
	}
	if p.AvailableFrom, err = formDate(form, "availableFrom"); err != nil {
		return p, err.Error()
	}
	p.Description = formValue(form, "description")
	p.Options = formList(form, "options")
	p.SecurityFacilities = formList(form, "securityFacilities")
	p.LandlordName = formValue(form, "landlordName")
	p.LandlordPhone = formValue(form, "landlordPhone")
	p.BusinessRegNo = formValue(form, "businessRegNo")

	return p, ""
}

func roomIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("roomId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New("invalid " + key)
	}
	return &v, nil
}
