package service

func SetPasswordCompare(s *UserService, compare func(hash, password []byte) error) {
	s.compare = compare
}
