package models

import "time"

// RoomType classifies the layout of a rental unit.
type RoomType string

const (
	RoomTypeOneRoom   RoomType = "ONE_ROOM"
	RoomTypeTwoRoom   RoomType = "TWO_ROOM"
	RoomTypeThreeRoom RoomType = "THREE_ROOM"
	RoomTypeOfficetel RoomType = "OFFICETEL"
	RoomTypeApartment RoomType = "APARTMENT"
)

// Direction is the compass orientation of the main windows.
type Direction string

const (
	DirectionEast      Direction = "EAST"
	DirectionWest      Direction = "WEST"
	DirectionSouth     Direction = "SOUTH"
	DirectionNorth     Direction = "NORTH"
	DirectionSouthEast Direction = "SOUTH_EAST"
	DirectionSouthWest Direction = "SOUTH_WEST"
	DirectionNorthEast Direction = "NORTH_EAST"
	DirectionNorthWest Direction = "NORTH_WEST"
)

// HeatingType is the building's heating arrangement.
type HeatingType string

const (
	HeatingIndividual HeatingType = "INDIVIDUAL"
	HeatingCentral    HeatingType = "CENTRAL"
	HeatingDistrict   HeatingType = "DISTRICT"
)

// EntranceType is the building's entrance layout.
type EntranceType string

const (
	EntranceStaircase EntranceType = "STAIRCASE"
	EntranceCorridor  EntranceType = "CORRIDOR"
	EntranceMixed     EntranceType = "MIXED"
)

// RoomImage is a picture attached to a room, stored inline on the room
// document. SortOrder is the display position; the image at position 0 of the
// initial upload is the thumbnail.
type RoomImage struct {
	ID        int64  `bson:"id" json:"imageId"`
	RoomID    int64  `bson:"room_id" json:"roomId"`
	URL       string `bson:"url" json:"imageUrl"`
	Thumbnail bool   `bson:"thumbnail" json:"isThumbnail"`
	SortOrder int    `bson:"sort_order" json:"sortOrder"`
}

// Room is a rental listing. Optional attributes are pointers so that an unset
// value is distinguishable from a zero value.
type Room struct {
	ID                 int64         `bson:"_id" json:"roomId"`
	Address            string        `bson:"address" json:"address"`
	Latitude           *float64      `bson:"latitude,omitempty" json:"latitude"`
	Longitude          *float64      `bson:"longitude,omitempty" json:"longitude"`
	MonthlyRent        int           `bson:"monthly_rent" json:"monthlyRent"`
	Deposit            int           `bson:"deposit" json:"deposit"`
	MaintenanceFee     *int          `bson:"maintenance_fee,omitempty" json:"maintenanceFee"`
	RoomType           RoomType      `bson:"room_type" json:"roomType"`
	AreaM2             *float64      `bson:"area_m2,omitempty" json:"area"`
	RoomCount          *int          `bson:"room_count,omitempty" json:"roomCount"`
	BathroomCount      *int          `bson:"bathroom_count,omitempty" json:"bathroomCount"`
	Direction          *Direction    `bson:"direction,omitempty" json:"direction"`
	HeatingType        *HeatingType  `bson:"heating_type,omitempty" json:"heatingType"`
	EntranceType       *EntranceType `bson:"entrance_type,omitempty" json:"entranceType"`
	BuildingUse        *string       `bson:"building_use,omitempty" json:"buildingUse"`
	ApprovalDate       *string       `bson:"approval_date,omitempty" json:"approvalDate"` // YYYY-MM-DD
	Floor              *int          `bson:"floor,omitempty" json:"floor"`
	TotalFloors        *int          `bson:"total_floors,omitempty" json:"totalFloors"`
	ParkingAvailable   *bool         `bson:"parking_available,omitempty" json:"parkingAvailable"`
	TotalParkingSpots  *int          `bson:"total_parking_spots,omitempty" json:"totalParkingSpots"`
	AvailableFrom      *string       `bson:"available_from,omitempty" json:"availableFrom"` // YYYY-MM-DD
	Description        *string       `bson:"description,omitempty" json:"description"`
	Options            []string      `bson:"options" json:"options"`
	SecurityFacilities []string      `bson:"security_facilities" json:"securityFacilities"`
	LandlordName       *string       `bson:"landlord_name,omitempty" json:"landlordName"`
	LandlordPhone      *string       `bson:"landlord_phone,omitempty" json:"landlordPhone"`
	BusinessRegNo      *string       `bson:"business_reg_no,omitempty" json:"businessRegNo"`
	UploaderID         *string       `bson:"uploader_id,omitempty" json:"uploaderId"`
	Images             []RoomImage   `bson:"images" json:"images"`
	CreatedAt          time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Clone returns a deep copy of the room.
func (r *Room) Clone() *Room {
	out := *r
	clonePtr := func(p *float64) *float64 {
		if p == nil {
			return nil
		}
		v := *p
		return &v
	}
	out.Latitude = clonePtr(r.Latitude)
	out.Longitude = clonePtr(r.Longitude)
	if r.Options != nil {
		out.Options = append([]string(nil), r.Options...)
	}
	if r.SecurityFacilities != nil {
		out.SecurityFacilities = append([]string(nil), r.SecurityFacilities...)
	}
	if r.Images != nil {
		out.Images = append([]RoomImage(nil), r.Images...)
	}
	return &out
}
