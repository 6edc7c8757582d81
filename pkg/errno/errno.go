package errno

import (
	"errors"
	"fmt"
)

const (
	SuccessCode = 0

	ServiceErrCode      = 10001
	ParamErrCode        = 10002
	MysqlErrCode        = 10003
	RedisErrCode        = 10004
	ConnectivityErrCode = 10005

	VideoNotFoundErrCode  = 20001
	DuplicateVideoErrCode = 20002
	NoMoreVideosErrCode   = 20003
	CommentTooLongErrCode = 20004

	AlreadyFriendsErrCode        = 30001
	FriendRequestNotFoundErrCode = 30002
	NotFriendsErrCode            = 30003
	NoMoreMessagesErrCode        = 30004
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

// Is matches on code only so that WithMessage variants still compare
// equal under errors.Is.
func (e ErrNo) Is(target error) bool {
	var t ErrNo
	if !errors.As(target, &t) {
		return false
	}
	return e.ErrCode == t.ErrCode
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{ErrCode: code, ErrMsg: msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success = NewErrNo(SuccessCode, "Success")

	ServiceErr      = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	ParamErr        = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	MysqlErr        = NewErrNo(MysqlErrCode, "Mysql operation failed")
	RedisErr        = NewErrNo(RedisErrCode, "Redis operation failed")
	ConnectivityErr = NewErrNo(ConnectivityErrCode, "Unable to connect to the database")

	VideoNotFoundErr  = NewErrNo(VideoNotFoundErrCode, "Video does not exist")
	DuplicateVideoErr = NewErrNo(DuplicateVideoErrCode, "Video with this title already exists for the user")
	NoMoreVideosErr   = NewErrNo(NoMoreVideosErrCode, "No more videos for the requested page")
	CommentTooLongErr = NewErrNo(CommentTooLongErrCode, "Comment too long")

	AlreadyFriendsErr        = NewErrNo(AlreadyFriendsErrCode, "Users are already friends")
	FriendRequestNotFoundErr = NewErrNo(FriendRequestNotFoundErrCode, "Friend request does not exist")
	NotFriendsErr            = NewErrNo(NotFriendsErrCode, "Users are not friends")
	NoMoreMessagesErr        = NewErrNo(NoMoreMessagesErrCode, "No more messages for the requested page")
)

// ConvertErr maps an arbitrary error to an ErrNo, keeping the code when
// the chain already carries one.
func ConvertErr(err error) ErrNo {
	var e ErrNo
	if errors.As(err, &e) {
		return e
	}
	s := ServiceErr
	s.ErrMsg = err.Error()
	return s
}
