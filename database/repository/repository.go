package repository

import (
	bookingRepo "servicefinder/database/repository/booking"
	catalogueRepo "servicefinder/database/repository/catalogue"
	providerRepo "servicefinder/database/repository/provider"
	reviewRepo "servicefinder/database/repository/review"
	userRepo "servicefinder/database/repository/user"
)

// Re-export the ProviderRepository interface and constructor.
type ProviderRepository = providerRepo.ProviderRepository

var NewMongoProviderRepo = providerRepo.NewMongoProviderRepo

// Re-export the ServiceRepository interface and constructor.
type ServiceRepository = catalogueRepo.ServiceRepository

var NewMongoServiceRepo = catalogueRepo.NewMongoServiceRepo

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

// Re-export the ReviewRepository interface and constructor.
type ReviewRepository = reviewRepo.ReviewRepository

var NewMongoReviewRepo = reviewRepo.NewMongoReviewRepo

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepository = userRepo.NewMongoUserRepo
