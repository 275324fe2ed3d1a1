package document

const (
	ErrMsgNotMap       = "Source is not a map."
	ErrMsgNotJSON      = "Source does not carry a JSON document."
	ErrMsgNotStruct    = "Destination type is not a struct."
	ErrMsgNotPointer   = "Destination must be a non-nil pointer to a struct."
	ErrMsgBadValueType = "Value type is not assignable to the member type."
)
