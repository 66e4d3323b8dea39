package types

type CreateCartRequestBody struct {
	ServiceType string `json:"service_type" binding:"required,servicetype"`
}

type AddCartItemRequestBody struct {
	MemberID uint `json:"member_id" binding:"required"`
}

type UpdateCartItemRequestBody struct {
	Field string `json:"field" binding:"required,oneof=date session backup_date backup_session"`
	Value string `json:"value"`
}

// SetBackupMemberRequestBody clears the backup when MemberID is zero.
type SetBackupMemberRequestBody struct {
	MemberID uint `json:"member_id"`
}

type CartItemURIParams struct {
	ID       string `uri:"id" binding:"required,uuid"`
	ClientID string `uri:"clientId" binding:"required,uuid"`
}

// CustomerForm is validated by the booking package, not by gin binding.
type CustomerForm struct {
	CustomerName   string `json:"customer_name" validate:"trimmin=3"`
	ContactTwitter string `json:"contact_twitter" validate:"required_without=ContactLine"`
	ContactLine    string `json:"contact_line" validate:"required_without=ContactTwitter"`
	ContactEmail   string `json:"contact_email" validate:"required,email"`
	PasswordJKT    string `json:"password_jkt" validate:"required"`
	AgreeTerms     bool   `json:"agree_terms" validate:"eq=true"`
}

type CreateReviewRequestBody struct {
	Name        string `json:"name" binding:"required,trimmin=2,trimmax=100"`
	ServiceType string `json:"service_type" binding:"required,oneof='Joki VC' 'Joki MNG' 'Joki 2S' 'Lainnya'"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Message     string `json:"message" binding:"required,trimmin=10,trimmax=500"`
	Website     string `json:"website"`
}

type ReviewQueryFilters struct {
	Limit int `form:"limit,omitempty" binding:"omitempty,min=1,max=50"`
}

type OrderQueryFilters struct {
	Status    string `form:"status,omitempty" binding:"omitempty,oneof=pending confirmed done cancelled"`
	OrderType string `form:"order_type,omitempty" binding:"omitempty,servicetype"`
	Q         string `form:"q,omitempty"`
	Limit     int    `form:"limit,omitempty" binding:"omitempty,min=1,max=200"`
	Offset    int    `form:"offset,omitempty" binding:"omitempty,min=0"`
}

type UpdateOrderStatusRequestBody struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed done cancelled"`
}

type UpdateOrderMetaRequestBody struct {
	TotalFee  *int64  `json:"total_fee,omitempty" binding:"omitempty,min=0"`
	HandledBy *string `json:"handled_by,omitempty"`
}

type BulkDeleteRequestBody struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

type AdminReviewQueryFilters struct {
	Approved *bool `form:"approved,omitempty"`
}

type ReviewApprovalRequestBody struct {
	Approved *bool `json:"approved" binding:"required"`
}

type ServiceKeyURIParams struct {
	Key string `uri:"key" binding:"required,oneof=video_call two_shot meet_greet"`
}

type UpdateServiceStatusRequestBody struct {
	Status  string  `json:"status" binding:"required,oneof=OPEN CLOSED FULL_SLOT COMING_SOON"`
	Message *string `json:"message,omitempty"`
}

type ContentKeyURIParams struct {
	Key string `uri:"key" binding:"required,max=64"`
}

type UpdateContentRequestBody struct {
	Value string `json:"value" binding:"required"`
}

type CreateMemberRequestBody struct {
	Name     string  `json:"name" binding:"required,trimmin=1,trimmax=100"`
	PhotoURL *string `json:"photo_url,omitempty" binding:"omitempty,url"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type UpdateMemberRequestBody struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,trimmin=1,trimmax=100"`
	PhotoURL *string `json:"photo_url,omitempty" binding:"omitempty,url"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type MemberFeeURIParams struct {
	ID   uint   `uri:"id" binding:"required"`
	Type string `uri:"type" binding:"required,servicetype"`
}

type AssignFeeRequestBody struct {
	FeeGroupID uint `json:"fee_group_id" binding:"required"`
}

type FeeGroupQueryFilters struct {
	FeeType string `form:"fee_type,omitempty" binding:"omitempty,servicetype"`
}

type CreateFeeGroupRequestBody struct {
	Name        string  `json:"name" binding:"required,trimmin=1"`
	Fee         *int64  `json:"fee" binding:"required,min=0"`
	Description *string `json:"description,omitempty"`
	FeeType     string  `json:"fee_type" binding:"required,servicetype"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type UpdateFeeGroupRequestBody struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,trimmin=1"`
	Fee         *int64  `json:"fee,omitempty" binding:"omitempty,min=0"`
	Description *string `json:"description,omitempty"`
	FeeType     *string `json:"fee_type,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type CreateTimetableImageRequestBody struct {
	ImageURL  string  `json:"image_url" binding:"required,url"`
	Caption   *string `json:"caption,omitempty"`
	SortOrder int     `json:"sort_order"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

type ServiceTypeURIParams struct {
	Type string `uri:"type" binding:"required,servicetype"`
}
