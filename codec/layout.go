package codec

/*
record layout (little endian, fixed offsets):
	typeID(2) | version(2) | id(4) | state(4) | creationTime(8) | expiryTime(8) |
	lastUpdate(8) | lastUpdateUser(4) | requester(4) | responder(4) | securityId(4) |
	requesterClOrdId(4+13) | side(4+11) | quantity(8) | limitPrice(8) |
	clusterSession(8) | lastCounterUser(4)
strings are stored as an int32 length followed by at most MaxLength bytes.
*/

const (
	RecordTypeID  uint16 = 5001
	SchemaVersion uint16 = 1

	HeaderLength = 4
	RecordLength = 112

	// Stride is the distance between two slots in a store buffer, one
	// delimiter byte is reserved after every record.
	Stride = RecordLength + 1

	lengthPrefix = 4
)

// Field locates one value inside a record.
type Field struct {
	Name      string
	Offset    int
	Width     int
	MaxLength int // only for text fields
}

var (
	FieldTypeID  = Field{Name: "typeId", Offset: 0, Width: 2}
	FieldVersion = Field{Name: "version", Offset: 2, Width: 2}

	FieldID               = Field{Name: "id", Offset: 4, Width: 4}
	FieldState            = Field{Name: "state", Offset: 8, Width: 4}
	FieldCreationTime     = Field{Name: "creationTime", Offset: 12, Width: 8}
	FieldExpiryTime       = Field{Name: "expiryTime", Offset: 20, Width: 8}
	FieldLastUpdate       = Field{Name: "lastUpdate", Offset: 28, Width: 8}
	FieldLastUpdateUser   = Field{Name: "lastUpdateUser", Offset: 36, Width: 4}
	FieldRequester        = Field{Name: "requester", Offset: 40, Width: 4}
	FieldResponder        = Field{Name: "responder", Offset: 44, Width: 4}
	FieldSecurityID       = Field{Name: "securityId", Offset: 48, Width: 4}
	FieldRequesterClOrdID = Field{Name: "requesterClOrdId", Offset: 52, Width: lengthPrefix + 13, MaxLength: 13}
	FieldSide             = Field{Name: "side", Offset: 69, Width: lengthPrefix + 11, MaxLength: 11}
	FieldQuantity         = Field{Name: "quantity", Offset: 84, Width: 8}
	FieldLimitPrice       = Field{Name: "limitPrice", Offset: 92, Width: 8}
	FieldClusterSession   = Field{Name: "clusterSession", Offset: 100, Width: 8}
	FieldLastCounterUser  = Field{Name: "lastCounterUser", Offset: 108, Width: 4}
)

// Fields lists every field in layout order.
var Fields = []Field{
	FieldTypeID, FieldVersion, FieldID, FieldState, FieldCreationTime, FieldExpiryTime,
	FieldLastUpdate, FieldLastUpdateUser, FieldRequester, FieldResponder, FieldSecurityID,
	FieldRequesterClOrdID, FieldSide, FieldQuantity, FieldLimitPrice, FieldClusterSession,
	FieldLastCounterUser,
}
