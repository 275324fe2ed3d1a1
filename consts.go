package properties

const (
	ErrMsgNilInstance    = "Instance cannot be nil."
	ErrMsgNotStruct      = "Instance is not a struct or pointer to struct."
	ErrMsgNotPointer     = "Destination must be a non-nil pointer."
	ErrMsgNotAddressable = "Cannot address member for forced access."
	ErrMsgNoMethod       = "Method is not present on the instance."
	ErrMsgBadMethodShape = "Method signature does not match the resolved property shape."
	ErrMsgBadValueType   = "Value type is not assignable to the property type."
	ErrMsgNilPath        = "Nil embedded pointer on the path to the member."
)
